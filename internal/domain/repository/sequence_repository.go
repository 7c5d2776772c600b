package repository

// SequenceRepository asigna secuencias de numeración de documentos de forma
// atómica por (propietario, tipo, periodo YYMM). A diferencia del conteo de
// mejor esfuerzo del generador, Next nunca entrega dos veces el mismo valor:
// la implementación usa un upsert con incremento en una sola sentencia.
type SequenceRepository interface {
	Next(ownerID, docType, period string) (int64, error)
}
