package entity

// Customer representa un cliente. Se relee en cada consulta; no se cachea.
type Customer struct {
	ID        int
	FirstName string
	LastName  string
	Street    string
	City      string
}
