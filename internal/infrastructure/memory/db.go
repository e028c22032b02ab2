// Package memory implementa los puertos de persistencia en memoria del proceso.
// Es el driver por defecto (STORE_DRIVER=memory) y el que usan los tests de los casos de uso.
package memory

import (
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// DB estado compartido por todos los repositorios en memoria.
type DB struct {
	mu            sync.RWMutex
	records       map[entity.RecordKey]*entity.QuantityRecord
	movements     []*entity.MovementEvent           // orden de inserción
	products      map[string]*entity.Product
	warehouses    map[string]*entity.Warehouse
	suppliers     map[string]*entity.Supplier
	orders        map[string]*entity.PurchaseOrder
	notifications []*entity.Notification
	categories    map[string]*entity.Category
	brands        map[string]*entity.Brand
	users         map[string]*entity.User
}

// NewDB crea una base vacía.
func NewDB() *DB {
	return &DB{
		records:    make(map[entity.RecordKey]*entity.QuantityRecord),
		products:   make(map[string]*entity.Product),
		warehouses: make(map[string]*entity.Warehouse),
		suppliers:  make(map[string]*entity.Supplier),
		orders:     make(map[string]*entity.PurchaseOrder),
		categories: make(map[string]*entity.Category),
		brands:     make(map[string]*entity.Brand),
		users:      make(map[string]*entity.User),
	}
}

// page aplica limit/offset sobre n elementos; limit <= 0 = sin límite.
func page(n, limit, offset int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if offset > n {
		offset = n
	}
	end := n
	if limit > 0 && offset+limit < n {
		end = offset + limit
	}
	return offset, end
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// sortBy ordena de forma estable por la llave devuelta por key.
func sortBy[T any](items []T, key func(T) string) {
	sort.SliceStable(items, func(i, j int) bool { return key(items[i]) < key(items[j]) })
}
