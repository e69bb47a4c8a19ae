package repository

// Nombres de colecciones del store. También son los canales de notificación de cambios.
const (
	CollectionProducts  = "products"
	CollectionMovements = "movements"
	CollectionWorkers   = "workers"
	CollectionUsers     = "app_users"
)

// ChangeNotifier entrega una señal por cada escritura en una colección.
// Las señales pueden llegar agrupadas; quien escucha debe releer la colección completa.
type ChangeNotifier interface {
	Watch(collection string) (<-chan struct{}, func())
}
