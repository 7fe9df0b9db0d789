package cmd

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/jhoicas/invoice-dao/internal/domain"
	"github.com/jhoicas/invoice-dao/internal/domain/repository"
	"github.com/jhoicas/invoice-dao/internal/ui"
)

var (
	createProducts   []int
	createQuantities []int
)

var invoicesCmd = &cobra.Command{
	Use:   "invoices",
	Short: "Consulta y creación de facturas",
}

var invoicesCountCmd = &cobra.Command{
	Use:   "count <customerID>",
	Short: "Número de facturas de un cliente",
	Args:  cobra.ExactArgs(1),
	RunE: withDAO(func(ctx context.Context, dao repository.InvoiceDAO, u *ui.UI, args []string) error {
		id, err := parseID("customerID", args[0])
		if err != nil {
			return err
		}
		n, err := dao.NumberOfInvoicesForCustomer(ctx, id)
		if err != nil {
			return err
		}
		u.Count("Facturas", n)
		return nil
	}),
}

var invoicesShowCmd = &cobra.Command{
	Use:   "show <invoiceID>",
	Short: "Cabecera y líneas de una factura",
	Args:  cobra.ExactArgs(1),
	RunE: withDAO(func(ctx context.Context, dao repository.InvoiceDAO, u *ui.UI, args []string) error {
		id, err := parseID("invoiceID", args[0])
		if err != nil {
			return err
		}
		inv, err := dao.FindInvoice(ctx, id)
		if err != nil {
			return err
		}
		if inv == nil {
			return errors.Wrapf(domain.ErrNotFound, "factura %d", id)
		}
		items, err := dao.ItemsOfInvoice(ctx, id)
		if err != nil {
			return err
		}
		u.Invoice(inv, items)
		return nil
	}),
}

var invoicesCreateCmd = &cobra.Command{
	Use:   "create <customerID> --product 1,2 --quantity 3,4",
	Short: "Crea una factura con una línea por producto",
	Long: `Crea la factura y sus líneas en una sola transacción.
--product y --quantity son listas paralelas: la línea i factura quantity[i] unidades de product[i]
al precio actual del producto. Si alguna línea falla no se guarda nada.`,
	Args: cobra.ExactArgs(1),
	RunE: withDAO(func(ctx context.Context, dao repository.InvoiceDAO, u *ui.UI, args []string) error {
		id, err := parseID("customerID", args[0])
		if err != nil {
			return err
		}
		customer, err := dao.FindCustomer(ctx, id)
		if err != nil {
			return err
		}
		if customer == nil {
			return errors.Wrapf(domain.ErrNotFound, "cliente %d", id)
		}
		invoiceID, err := dao.CreateInvoice(ctx, customer, createProducts, createQuantities)
		if err != nil {
			return err
		}
		u.Success(fmt.Sprintf("factura %d creada para %s %s", invoiceID, customer.FirstName, customer.LastName))
		u.Count("Líneas", len(createProducts))
		u.Count("Unidades", lo.Sum(createQuantities))
		return nil
	}),
}

func init() {
	invoicesCreateCmd.Flags().IntSliceVar(&createProducts, "product", nil, "IDs de producto, en orden de línea")
	invoicesCreateCmd.Flags().IntSliceVar(&createQuantities, "quantity", nil, "cantidades, paralelas a --product")

	invoicesCmd.AddCommand(invoicesCountCmd, invoicesShowCmd, invoicesCreateCmd)
	rootCmd.AddCommand(invoicesCmd)
}
