package cmd

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/jhoicas/invoice-dao/internal/domain"
	"github.com/jhoicas/invoice-dao/internal/domain/repository"
	"github.com/jhoicas/invoice-dao/internal/ui"
)

var customersCmd = &cobra.Command{
	Use:   "customers",
	Short: "Consultas sobre clientes",
}

var customersCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Número de clientes",
	Args:  cobra.NoArgs,
	RunE: withDAO(func(ctx context.Context, dao repository.InvoiceDAO, u *ui.UI, _ []string) error {
		n, err := dao.NumberOfCustomers(ctx)
		if err != nil {
			return err
		}
		u.Count("Clientes", n)
		return nil
	}),
}

var customersFindCmd = &cobra.Command{
	Use:   "find <customerID>",
	Short: "Ficha de un cliente",
	Args:  cobra.ExactArgs(1),
	RunE: withDAO(func(ctx context.Context, dao repository.InvoiceDAO, u *ui.UI, args []string) error {
		id, err := parseID("customerID", args[0])
		if err != nil {
			return err
		}
		c, err := dao.FindCustomer(ctx, id)
		if err != nil {
			return err
		}
		if c == nil {
			return errors.Wrapf(domain.ErrNotFound, "cliente %d", id)
		}
		u.Customer(c)
		return nil
	}),
}

var customersNameCmd = &cobra.Command{
	Use:   "name <customerID>",
	Short: "Apellido de un cliente",
	Args:  cobra.ExactArgs(1),
	RunE: withDAO(func(ctx context.Context, dao repository.InvoiceDAO, u *ui.UI, args []string) error {
		id, err := parseID("customerID", args[0])
		if err != nil {
			return err
		}
		name, ok, err := dao.NameOfCustomer(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return errors.Wrapf(domain.ErrNotFound, "cliente %d", id)
		}
		u.KeyValue("Apellido", name)
		return nil
	}),
}

var customersCityCmd = &cobra.Command{
	Use:   "city <city>",
	Short: "Clientes de una ciudad (coincidencia exacta)",
	Args:  cobra.ExactArgs(1),
	RunE: withDAO(func(ctx context.Context, dao repository.InvoiceDAO, u *ui.UI, args []string) error {
		list, err := dao.CustomersInCity(ctx, args[0])
		if err != nil {
			return err
		}
		u.Customers(list)
		return nil
	}),
}

var customersTotalCmd = &cobra.Command{
	Use:   "total <customerID>",
	Short: "Suma de los totales facturados al cliente",
	Args:  cobra.ExactArgs(1),
	RunE: withDAO(func(ctx context.Context, dao repository.InvoiceDAO, u *ui.UI, args []string) error {
		id, err := parseID("customerID", args[0])
		if err != nil {
			return err
		}
		total, err := dao.TotalForCustomer(ctx, id)
		if err != nil {
			return err
		}
		u.KeyValue("Total", total.StringFixed(2))
		return nil
	}),
}

func init() {
	customersCmd.AddCommand(customersCountCmd, customersFindCmd, customersNameCmd, customersCityCmd, customersTotalCmd)
	rootCmd.AddCommand(customersCmd)
}
