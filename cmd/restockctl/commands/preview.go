package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ghuser/restock/pkg/config"
	"github.com/ghuser/restock/pkg/logger"
	appsvcs "github.com/ghuser/restock/services/restock/application/services"
	"github.com/ghuser/restock/services/restock/domain/services"
	"github.com/ghuser/restock/services/restock/infrastructure/persistence/memory"
)

const previewUserID = "restockctl"

type previewInput struct {
	Name  string        `json:"name"`
	Items []previewItem `json:"items"`
}

type previewItem struct {
	ProductName   string `json:"product_name"`
	Quantity      int    `json:"quantity"`
	SupplierName  string `json:"supplier_name"`
	SupplierEmail string `json:"supplier_email"`
	Notes         string `json:"notes"`
}

type previewOptions struct {
	file   string
	asJSON bool
	sender services.Sender
}

func previewCmd() *cobra.Command {
	opts := previewOptions{}

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render the supplier emails for a restock list without a database",
		Long: `preview reads a restock list as JSON:

  {"name": "Weekly", "items": [{"product_name": "Oat milk", "quantity": 12,
    "supplier_name": "Dairy Co", "supplier_email": "orders@dairy.example"}]}

and prints one email per supplier, exactly as the service would send them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := readPreviewInput(cmd.InOrStdin(), opts.file)
			if err != nil {
				return err
			}
			return runPreview(cmd, in, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "-", "restock list JSON, - for stdin")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the rendered emails as JSON")
	cmd.Flags().StringVar(&opts.sender.StoreName, "store", envOr("RESTOCK_STORE_NAME", "My Store"), "store name signed on each email")
	cmd.Flags().StringVar(&opts.sender.SenderName, "sender-name", envOr("RESTOCK_SENDER_NAME", ""), "name of the person placing the order")
	cmd.Flags().StringVar(&opts.sender.SenderEmail, "sender-email", envOr("RESTOCK_SENDER_EMAIL", ""), "reply-to address")
	return cmd
}

func readPreviewInput(stdin io.Reader, file string) (previewInput, error) {
	r := stdin
	if file != "" && file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return previewInput{}, fmt.Errorf("open %s: %w", file, err)
		}
		defer f.Close() //nolint:errcheck
		r = f
	}

	var in previewInput
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		return previewInput{}, fmt.Errorf("decode restock list: %w", err)
	}
	return in, nil
}

// runPreview drives the regular use-cases over in-memory repositories, so the
// output goes through the same validation, catalog matching and grouping as
// the API.
func runPreview(cmd *cobra.Command, in previewInput, opts previewOptions) error {
	ctx := cmd.Context()
	uc := appsvcs.NewSessionUseCases(appsvcs.SessionUseCaseDeps{
		Sessions:  memory.NewSessionRepository(),
		Products:  memory.NewProductRepository(),
		Suppliers: memory.NewSupplierRepository(),
		Logger:    logger.New(&config.Config{LogLevel: "error"}),
		Sender:    opts.sender,
	})

	s, err := uc.CreateSession(ctx, previewUserID, in.Name)
	if err != nil {
		return err
	}
	for i, it := range in.Items {
		if _, err := uc.AddItem(ctx, previewUserID, s.ID, services.AddItemRequest{
			ProductName:   it.ProductName,
			Quantity:      it.Quantity,
			SupplierName:  it.SupplierName,
			SupplierEmail: it.SupplierEmail,
			Notes:         it.Notes,
		}); err != nil {
			return fmt.Errorf("item %d: %w", i+1, err)
		}
	}

	res, err := uc.GenerateEmails(ctx, previewUserID, s.ID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res.Emails)
	}

	fmt.Fprintf(out, "%s: %d items for %d suppliers\n", res.Session.Name, res.Session.ItemCount(), len(res.Emails))
	for _, e := range res.Emails {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "To: %s\n", e.To)
		if e.ReplyTo != "" {
			fmt.Fprintf(out, "Reply-To: %s\n", e.ReplyTo)
		}
		fmt.Fprintf(out, "Subject: %s\n\n%s\n", e.Subject, e.Body)
	}
	return nil
}
