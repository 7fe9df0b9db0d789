package testutil

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/jhoicas/invoice-dao/internal/domain"
	"github.com/jhoicas/invoice-dao/internal/domain/entity"
	"github.com/jhoicas/invoice-dao/internal/domain/repository"
)

// Store es lo que cada implementación entrega a la suite: el DAO bajo prueba y acceso
// directo a la misma base para sembrar datos y verificar efectos.
type Store struct {
	DAO repository.InvoiceDAO
	// Exec ejecuta una sentencia en auto-commit; los placeholders se escriben con '?'.
	Exec func(ctx context.Context, query string, args ...any) error
	// QueryInt ejecuta una consulta que devuelve un único entero.
	QueryInt func(ctx context.Context, query string, args ...any) (int, error)
	Close    func()
}

// InvoiceDAOSuite verifica el contrato de repository.InvoiceDAO contra una base real.
// El esquema debe tener el trigger que mantiene Invoice.Total y otro que descarta en
// silencio las líneas con Quantity = 0 (para provocar una inserción sin filas afectadas).
type InvoiceDAOSuite struct {
	suite.Suite
	NewStore func(t *testing.T) *Store

	ctx   context.Context
	store *Store
	dao   repository.InvoiceDAO
}

// Clientes y productos sembrados antes de cada test.
var (
	SeedCustomers = []entity.Customer{
		{ID: 1, FirstName: "Ada", LastName: "Lovelace", Street: "12 St James Square", City: "London"},
		{ID: 2, FirstName: "Marie", LastName: "Curie", Street: "36 Quai de Béthune", City: "Paris"},
		{ID: 3, FirstName: "Victor", LastName: "Hugo", Street: "6 Place des Vosges", City: "Paris"},
		{ID: 4, FirstName: "Jean", LastName: "Valjean", Street: "1 rue de Paris", City: "paris"},
		{ID: 5, FirstName: "Pierre", LastName: "Curie", Street: "Rue Cuvier", City: "Paris-Saclay"},
	}
	SeedProducts = []entity.Product{
		{ID: 1, Price: decimal.RequireFromString("10.50")},
		{ID: 2, Price: decimal.RequireFromString("2.25")},
		{ID: 3, Price: decimal.RequireFromString("99.99")},
	}
)

const missingProductID = 404

func (s *InvoiceDAOSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = s.NewStore(s.T())
	s.dao = s.store.DAO

	for _, c := range SeedCustomers {
		s.exec(`INSERT INTO Customer (ID, FirstName, LastName, Street, City) VALUES (?, ?, ?, ?, ?)`,
			c.ID, c.FirstName, c.LastName, c.Street, c.City)
	}
	for _, p := range SeedProducts {
		s.exec(`INSERT INTO Product (ID, Price) VALUES (?, ?)`, p.ID, p.Price)
	}
}

func (s *InvoiceDAOSuite) TearDownTest() {
	if s.store != nil && s.store.Close != nil {
		s.store.Close()
	}
}

func (s *InvoiceDAOSuite) exec(query string, args ...any) {
	s.T().Helper()
	s.Require().NoError(s.store.Exec(s.ctx, query, args...))
}

func (s *InvoiceDAOSuite) queryInt(query string, args ...any) int {
	s.T().Helper()
	n, err := s.store.QueryInt(s.ctx, query, args...)
	s.Require().NoError(err)
	return n
}

func (s *InvoiceDAOSuite) customer(id int) *entity.Customer {
	for i := range SeedCustomers {
		if SeedCustomers[i].ID == id {
			c := SeedCustomers[i]
			return &c
		}
	}
	s.FailNow("cliente no sembrado", "id %d", id)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas
// ──────────────────────────────────────────────────────────────────────────────

func (s *InvoiceDAOSuite) TestTotalForCustomer_NoInvoicesIsZero() {
	for _, id := range []int{1, 999} {
		total, err := s.dao.TotalForCustomer(s.ctx, id)
		s.Require().NoError(err)
		s.True(total.IsZero(), "cliente %d: se esperaba 0, se obtuvo %s", id, total)
	}
}

func (s *InvoiceDAOSuite) TestTotalForCustomer_SumsInvoiceTotals() {
	s.exec(`INSERT INTO Invoice (CustomerID, Total) VALUES (?, ?)`, 2, decimal.RequireFromString("100.25"))
	s.exec(`INSERT INTO Invoice (CustomerID, Total) VALUES (?, ?)`, 2, decimal.RequireFromString("50.50"))
	s.exec(`INSERT INTO Invoice (CustomerID, Total) VALUES (?, ?)`, 3, decimal.RequireFromString("7.00"))

	total, err := s.dao.TotalForCustomer(s.ctx, 2)
	s.Require().NoError(err)
	s.True(decimal.RequireFromString("150.75").Equal(total), "total = %s", total)
}

func (s *InvoiceDAOSuite) TestNameOfCustomer() {
	name, ok, err := s.dao.NameOfCustomer(s.ctx, 3)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal("Hugo", name)

	name, ok, err = s.dao.NameOfCustomer(s.ctx, 999)
	s.Require().NoError(err)
	s.False(ok)
	s.Empty(name)
}

func (s *InvoiceDAOSuite) TestNumberOfCustomers() {
	n, err := s.dao.NumberOfCustomers(s.ctx)
	s.Require().NoError(err)
	s.Equal(len(SeedCustomers), n)

	s.exec(`INSERT INTO Customer (ID, FirstName, LastName, Street, City) VALUES (?, ?, ?, ?, ?)`,
		6, "Emile", "Zola", "21 rue de Bruxelles", "Paris")
	n, err = s.dao.NumberOfCustomers(s.ctx)
	s.Require().NoError(err)
	s.Equal(len(SeedCustomers)+1, n)
}

func (s *InvoiceDAOSuite) TestNumberOfInvoicesForCustomer() {
	n, err := s.dao.NumberOfInvoicesForCustomer(s.ctx, 2)
	s.Require().NoError(err)
	s.Zero(n)

	s.exec(`INSERT INTO Invoice (CustomerID, Total) VALUES (?, ?)`, 2, decimal.Zero)
	s.exec(`INSERT INTO Invoice (CustomerID, Total) VALUES (?, ?)`, 2, decimal.Zero)
	s.exec(`INSERT INTO Invoice (CustomerID, Total) VALUES (?, ?)`, 1, decimal.Zero)

	n, err = s.dao.NumberOfInvoicesForCustomer(s.ctx, 2)
	s.Require().NoError(err)
	s.Equal(2, n)

	n, err = s.dao.NumberOfInvoicesForCustomer(s.ctx, 999)
	s.Require().NoError(err)
	s.Zero(n)
}

func (s *InvoiceDAOSuite) TestFindCustomer_RoundTrip() {
	got, err := s.dao.FindCustomer(s.ctx, 2)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(*s.customer(2), *got)
}

func (s *InvoiceDAOSuite) TestFindCustomer_Absent() {
	got, err := s.dao.FindCustomer(s.ctx, 999)
	s.Require().NoError(err)
	s.Nil(got)
}

func (s *InvoiceDAOSuite) TestCustomersInCity_ExactMatch() {
	list, err := s.dao.CustomersInCity(s.ctx, "Paris")
	s.Require().NoError(err)

	ids := make([]int, 0, len(list))
	for _, c := range list {
		s.Equal("Paris", c.City)
		ids = append(ids, c.ID)
	}
	// "paris" y "Paris-Saclay" no deben coincidir.
	s.ElementsMatch([]int{2, 3}, ids)
}

func (s *InvoiceDAOSuite) TestCustomersInCity_NoneIsEmptyList() {
	list, err := s.dao.CustomersInCity(s.ctx, "Lyon")
	s.Require().NoError(err)
	s.NotNil(list)
	s.Empty(list)
}

func (s *InvoiceDAOSuite) TestFindInvoice_Absent() {
	inv, err := s.dao.FindInvoice(s.ctx, 999)
	s.Require().NoError(err)
	s.Nil(inv)

	items, err := s.dao.ItemsOfInvoice(s.ctx, 999)
	s.Require().NoError(err)
	s.Empty(items)
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateInvoice
// ──────────────────────────────────────────────────────────────────────────────

func (s *InvoiceDAOSuite) TestCreateInvoice_MismatchedLengths() {
	_, err := s.dao.CreateInvoice(s.ctx, s.customer(1), []int{1, 2}, []int{3})
	s.Require().Error(err)
	s.True(errors.Is(err, domain.ErrInvalidInput), "err = %v", err)

	s.Zero(s.queryInt(`SELECT COUNT(*) FROM Invoice`))
	s.Zero(s.queryInt(`SELECT COUNT(*) FROM Item`))
}

func (s *InvoiceDAOSuite) TestCreateInvoice_NilCustomer() {
	_, err := s.dao.CreateInvoice(s.ctx, nil, []int{1}, []int{1})
	s.True(errors.Is(err, domain.ErrInvalidInput), "err = %v", err)
	s.Zero(s.queryInt(`SELECT COUNT(*) FROM Invoice`))
}

func (s *InvoiceDAOSuite) TestCreateInvoice_InsertsInvoiceAndItems() {
	productIDs := []int{1, 2}
	quantities := []int{3, 4}

	invoiceID, err := s.dao.CreateInvoice(s.ctx, s.customer(2), productIDs, quantities)
	s.Require().NoError(err)
	s.Positive(invoiceID)

	s.Equal(1, s.queryInt(`SELECT COUNT(*) FROM Invoice WHERE CustomerID = ?`, 2))
	s.Equal(2, s.queryInt(`SELECT COUNT(*) FROM Item WHERE InvoiceID = ?`, invoiceID))

	items, err := s.dao.ItemsOfInvoice(s.ctx, invoiceID)
	s.Require().NoError(err)
	s.Require().Len(items, 2)
	expected := decimal.Zero
	for i, it := range items {
		s.Equal(invoiceID, it.InvoiceID)
		s.Equal(i, it.LineIndex, "los índices de línea deben ser 0..n-1")
		s.Equal(productIDs[i], it.ProductID)
		s.Equal(quantities[i], it.Quantity)
		price := SeedProducts[productIDs[i]-1].Price
		s.True(price.Equal(it.UnitPrice), "línea %d: precio %s", i, it.UnitPrice)
		expected = expected.Add(it.Cost())
	}
	s.True(decimal.RequireFromString("40.50").Equal(expected))

	inv, err := s.dao.FindInvoice(s.ctx, invoiceID)
	s.Require().NoError(err)
	s.Require().NotNil(inv)
	s.Equal(2, inv.CustomerID)
	s.True(expected.Equal(inv.Total), "el trigger debe mantener Total: %s", inv.Total)

	total, err := s.dao.TotalForCustomer(s.ctx, 2)
	s.Require().NoError(err)
	s.True(expected.Equal(total))
}

func (s *InvoiceDAOSuite) TestCreateInvoice_SnapshotsUnitPrice() {
	invoiceID, err := s.dao.CreateInvoice(s.ctx, s.customer(1), []int{3}, []int{1})
	s.Require().NoError(err)

	s.exec(`UPDATE Product SET Price = ? WHERE ID = ?`, decimal.RequireFromString("1.00"), 3)

	items, err := s.dao.ItemsOfInvoice(s.ctx, invoiceID)
	s.Require().NoError(err)
	s.Require().Len(items, 1)
	s.True(decimal.RequireFromString("99.99").Equal(items[0].UnitPrice))
}

func (s *InvoiceDAOSuite) TestCreateInvoice_UnknownProductRollsBack() {
	_, err := s.dao.CreateInvoice(s.ctx, s.customer(3), []int{1, 2, missingProductID}, []int{1, 1, 1})
	s.Require().Error(err)

	s.Zero(s.queryInt(`SELECT COUNT(*) FROM Invoice WHERE CustomerID = ?`, 3))
	s.Zero(s.queryInt(`SELECT COUNT(*) FROM Item`))

	total, err := s.dao.TotalForCustomer(s.ctx, 3)
	s.Require().NoError(err)
	s.True(total.IsZero())
}

func (s *InvoiceDAOSuite) TestCreateInvoice_ZeroRowsAffectedRollsBack() {
	_, err := s.dao.CreateInvoice(s.ctx, s.customer(1), []int{1, 2}, []int{1, 0})
	s.Require().Error(err)
	s.True(errors.Is(err, domain.ErrWriteFailed), "err = %v", err)

	s.Zero(s.queryInt(`SELECT COUNT(*) FROM Invoice`))
	s.Zero(s.queryInt(`SELECT COUNT(*) FROM Item`))
}

func (s *InvoiceDAOSuite) TestCreateInvoice_ConnectionUsableAfterFailure() {
	_, err := s.dao.CreateInvoice(s.ctx, s.customer(3), []int{missingProductID}, []int{1})
	s.Require().Error(err)

	// Escritura independiente sin transacción explícita: debe quedar confirmada.
	s.exec(`INSERT INTO Customer (ID, FirstName, LastName, Street, City) VALUES (?, ?, ?, ?, ?)`,
		7, "George", "Sand", "Nohant", "Nohant-Vic")
	n, err := s.dao.NumberOfCustomers(s.ctx)
	s.Require().NoError(err)
	s.Equal(len(SeedCustomers)+1, n)

	// Y el DAO sigue creando facturas normalmente.
	_, err = s.dao.CreateInvoice(s.ctx, s.customer(3), []int{2}, []int{2})
	s.Require().NoError(err)
	s.Equal(1, s.queryInt(`SELECT COUNT(*) FROM Invoice WHERE CustomerID = ?`, 3))
}

func (s *InvoiceDAOSuite) TestCreateInvoice_NoItems() {
	invoiceID, err := s.dao.CreateInvoice(s.ctx, s.customer(4), nil, nil)
	s.Require().NoError(err)

	inv, err := s.dao.FindInvoice(s.ctx, invoiceID)
	s.Require().NoError(err)
	s.Require().NotNil(inv)
	s.True(inv.Total.IsZero())
	s.Zero(s.queryInt(`SELECT COUNT(*) FROM Item WHERE InvoiceID = ?`, invoiceID))
}
