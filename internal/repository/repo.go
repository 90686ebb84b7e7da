package repository

import "github.com/jackc/pgx/v5/pgxpool"

type Repository struct {
	Orders    OrdersRepository
	Tables    TablesRepository
	Customers CustomersRepository
	Payments  PaymentsRepository
	Menu      MenuRepository
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{
		Orders:    NewOrdersRepository(pool),
		Tables:    NewTablesRepository(pool),
		Customers: NewCustomersRepository(pool),
		Payments:  NewPaymentsRepository(pool),
		Menu:      NewMenuRepository(pool),
	}
}
