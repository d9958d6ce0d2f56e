package services

import (
	"sync"

	"orderdesk/internal/domain"
	"orderdesk/internal/query"
	"orderdesk/internal/repos"
)

type CatalogService struct {
	Customers *repos.CustomerRepo
	Products  *repos.ProductRepo
	Orders    *repos.OrderRepo
}

func NewCatalogService(customers *repos.CustomerRepo, products *repos.ProductRepo, orders *repos.OrderRepo) *CatalogService {
	return &CatalogService{Customers: customers, Products: products, Orders: orders}
}

func (s *CatalogService) ListCustomers(f query.CustomerFilter) ([]domain.Customer, error) {
	return s.Customers.Search(f)
}

func (s *CatalogService) GetCustomer(id string) (domain.Customer, error) {
	return s.Customers.Get(id)
}

func (s *CatalogService) CreateCustomer(c domain.Customer) (domain.Customer, error) {
	if err := c.Validate(); err != nil {
		return domain.Customer{}, err
	}
	return s.Customers.Create(c)
}

func (s *CatalogService) UpdateCustomer(id string, c domain.Customer) (domain.Customer, error) {
	if err := c.Validate(); err != nil {
		return domain.Customer{}, err
	}
	return s.Customers.Update(id, c)
}

func (s *CatalogService) DeleteCustomer(id string) error {
	return s.Customers.Delete(id)
}

func (s *CatalogService) ListProducts(f query.ProductFilter) ([]domain.Product, error) {
	return s.Products.Search(f)
}

func (s *CatalogService) GetProduct(id string) (domain.Product, error) {
	return s.Products.Get(id)
}

func (s *CatalogService) CreateProduct(p domain.Product) (domain.Product, error) {
	if err := p.Validate(); err != nil {
		return domain.Product{}, err
	}
	return s.Products.Create(p)
}

func (s *CatalogService) UpdateProduct(id string, p domain.Product) (domain.Product, error) {
	if err := p.Validate(); err != nil {
		return domain.Product{}, err
	}
	return s.Products.Update(id, p)
}

func (s *CatalogService) DeleteProduct(id string) error {
	return s.Products.Delete(id)
}

// Snapshot holds one full in-memory view of the data set. Each slot fails
// independently; a broken fetch never hides the other two.
type Snapshot struct {
	Customers    []domain.Customer
	CustomersErr error
	Products     []domain.Product
	ProductsErr  error
	Orders       []domain.Order
	OrdersErr    error
}

// Err returns the first load failure, if any.
func (s Snapshot) Err() error {
	if s.CustomersErr != nil {
		return s.CustomersErr
	}
	if s.ProductsErr != nil {
		return s.ProductsErr
	}
	return s.OrdersErr
}

// LoadSnapshot fetches customers, products and orders concurrently.
func (s *CatalogService) LoadSnapshot() Snapshot {
	var snap Snapshot
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		snap.Customers, snap.CustomersErr = s.Customers.List()
	}()
	go func() {
		defer wg.Done()
		snap.Products, snap.ProductsErr = s.Products.List()
	}()
	go func() {
		defer wg.Done()
		snap.Orders, snap.OrdersErr = s.Orders.List()
	}()
	wg.Wait()
	return snap
}

// ComposerCatalog builds the snapshot the order composer resolves against.
func (s *CatalogService) ComposerCatalog() (Catalog, error) {
	customers, err := s.Customers.List()
	if err != nil {
		return Catalog{}, err
	}
	products, err := s.Products.List()
	if err != nil {
		return Catalog{}, err
	}
	return NewCatalog(customers, products), nil
}
