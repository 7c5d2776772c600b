package postgres

import (
	"context"
	"fmt"

	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo contador atómico de numeración por (propietario, tipo, periodo).
// El upsert con RETURNING garantiza que dos creaciones concurrentes nunca
// reciben la misma secuencia, algo que el conteo de documentos no puede dar.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next incrementa y devuelve la secuencia del periodo.
func (r *SequenceRepo) Next(ownerID, docType, period string) (int64, error) {
	const query = `
		INSERT INTO document_sequences (owner_id, doc_type, period, last_value)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (owner_id, doc_type, period)
		DO UPDATE SET last_value = document_sequences.last_value + 1
		RETURNING last_value`
	var seq int64
	err := r.q.QueryRow(context.Background(), query, ownerID, docType, period).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}
