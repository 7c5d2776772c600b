package document

import "sync"

// NumberAllocator cachea por (propietario, tipo) el número mostrado en un
// formulario de creación, para que no cambie entre renders antes de guardar.
// Es estado explícito e inyectable en lugar de una variable global de módulo:
// los tests lo construyen y descartan sin fugas entre casos.
type NumberAllocator struct {
	mu    sync.Mutex
	cache map[string]string
}

// NewNumberAllocator construye un allocator vacío.
func NewNumberAllocator() *NumberAllocator {
	return &NumberAllocator{cache: make(map[string]string)}
}

// Preview devuelve el número cacheado para (ownerID, docType) o, si no hay,
// invoca generate y cachea el resultado hasta que se consuma o invalide.
func (a *NumberAllocator) Preview(ownerID, docType string, generate func() (string, error)) (string, error) {
	key := ownerID + "/" + docType

	a.mu.Lock()
	if n, ok := a.cache[key]; ok {
		a.mu.Unlock()
		return n, nil
	}
	a.mu.Unlock()

	// Generar fuera del lock: puede implicar una consulta a la DB.
	n, err := generate()
	if err != nil {
		return "", err
	}

	a.mu.Lock()
	a.cache[key] = n
	a.mu.Unlock()
	return n, nil
}

// Invalidate descarta el número cacheado de (ownerID, docType). Se llama al
// guardar el documento o al pedir explícitamente una regeneración.
func (a *NumberAllocator) Invalidate(ownerID, docType string) {
	a.mu.Lock()
	delete(a.cache, ownerID+"/"+docType)
	a.mu.Unlock()
}
