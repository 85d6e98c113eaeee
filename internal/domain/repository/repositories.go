package repository

// Repositories agrupa los repositorios atados a una misma conexión o transacción.
// Se construye una vez por proceso (o por transacción) y se pasa explícitamente.
type Repositories struct {
	SKUs        SKURepository
	Items       StockItemRepository
	Tasks       TaskRepository
	Postings    PostingRepository
	Discounts   DiscountRepository
	Acceptances AcceptanceRepository
}
