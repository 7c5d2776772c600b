// seed crea datos de demostración: un usuario admin, su perfil de negocio,
// un cliente y una factura de ejemplo con dos líneas.
//
// Uso: go run ./cmd/seed
// Credenciales resultantes: admin@example.com / password123
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain/document"
	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain/entity"
	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain/repository"
	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/infrastructure/postgres"
	"github.com/Roquverse/flow-invoice-nexus-sub000/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fail("cargar configuración: %v", err)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fail("conexión a PostgreSQL: %v", err)
	}
	defer pool.Close()

	now := time.Now()

	// Usuario admin
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		fail("hash de password: %v", err)
	}
	userRepo := postgres.NewUserRepository(pool)
	admin := &entity.User{
		ID:           uuid.New().String(),
		Email:        "admin@example.com",
		PasswordHash: string(hash),
		Name:         "Admin Demo",
		Role:         entity.RoleAdmin,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if existing, _ := userRepo.FindByEmail(admin.Email); existing != nil {
		fail("el usuario %s ya existe; base ya poblada", admin.Email)
	}
	if err := userRepo.Create(admin); err != nil {
		fail("crear usuario: %v", err)
	}

	// Perfil de negocio
	businessRepo := postgres.NewBusinessRepository(pool)
	business := &entity.Business{
		ID:              uuid.New().String(),
		OwnerID:         admin.ID,
		Name:            "Estudio Demo S.A.S.",
		TaxID:           "901234567",
		Email:           "facturacion@estudiodemo.example",
		Phone:           "+57 300 000 0000",
		Address:         "Calle 10 # 20-30, Bogotá",
		DefaultCurrency: cfg.Billing.DefaultCurrency,
		DefaultTaxRate:  decimal.NewFromInt(int64(cfg.Billing.DefaultTaxRate)),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := businessRepo.Create(business); err != nil {
		fail("crear perfil de negocio: %v", err)
	}

	// Cliente
	clientRepo := postgres.NewClientRepository(pool)
	client := &entity.Client{
		ID:          uuid.New().String(),
		OwnerID:     admin.ID,
		Name:        "Acme Corp",
		CompanyName: "Acme Corporation Ltd.",
		Email:       "compras@acme.example",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := clientRepo.Create(client); err != nil {
		fail("crear cliente: %v", err)
	}

	// Factura de ejemplo con numeración real
	txRunner := postgres.NewTxRunner(pool)
	err = txRunner.RunBilling(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		_ repository.QuoteRepository,
		_ repository.ReceiptRepository,
		seqRepo repository.SequenceRepository,
	) error {
		seq, err := seqRepo.Next(admin.ID, document.DocTypeInvoice, document.Period(now))
		if err != nil {
			return err
		}
		number, err := document.FormatNumber(document.DocTypeInvoice, now, seq)
		if err != nil {
			return err
		}

		lines := []document.LineItem{
			document.NewLineItem(uuid.New().String()).
				WithQuantity(decimal.NewFromInt(10)).
				WithUnitPrice(decimal.NewFromInt(120)),
			document.NewLineItem(uuid.New().String()).
				WithQuantity(decimal.NewFromInt(5)).
				WithUnitPrice(decimal.NewFromInt(80)),
		}
		lines[0].Description = "Horas de consultoría"
		lines[1].Description = "Soporte mensual"

		taxRate := decimal.NewFromInt(19)
		totals := document.ComputeTotals(lines, taxRate, decimal.Zero)

		inv := &entity.Invoice{
			ID:        uuid.New().String(),
			OwnerID:   admin.ID,
			ClientID:  client.ID,
			Number:    number,
			Currency:  business.DefaultCurrency,
			IssueDate: now,
			DueDate:   now.AddDate(0, 0, 30),
			Status:    entity.InvoiceStatusDraft,
			TaxRate:   taxRate,
			Subtotal:  totals.Subtotal,
			TaxAmount: totals.TaxAmount,
			Total:     totals.Total,
			Notes:     "Factura de demostración",
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := invoiceRepo.Create(inv); err != nil {
			return err
		}
		for pos, li := range lines {
			item := &entity.InvoiceItem{
				ID:          li.ID,
				InvoiceID:   inv.ID,
				Description: li.Description,
				Quantity:    li.Quantity,
				UnitPrice:   li.UnitPrice,
				Amount:      li.Amount,
				Position:    pos,
			}
			if err := invoiceRepo.CreateItem(item); err != nil {
				return err
			}
		}
		fmt.Printf("Factura de ejemplo creada: %s (total %s)\n", inv.Number, inv.Total.StringFixed(2))
		return nil
	})
	if err != nil {
		fail("crear factura de ejemplo: %v", err)
	}

	fmt.Println("Datos de demostración listos. Login: admin@example.com / password123")
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
