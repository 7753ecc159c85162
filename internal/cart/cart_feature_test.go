package cart

import (
	"context"
	"fmt"
	"testing"

	"github.com/cucumber/godog"

	"storefront/internal/models"
	"storefront/internal/store"
)

type cartFeatureContext struct {
	products *store.MemoryProducts
	svc      *Service
	bySKU    map[string]int
}

func (c *cartFeatureContext) reset() {
	c.products = store.NewMemoryProducts(nil)
	c.svc = NewService(store.NewMemoryCart(nil), c.products, DefaultPricing())
	c.bySKU = make(map[string]int)
}

func (c *cartFeatureContext) theCatalogContainsPriced(sku string, price int) error {
	p, err := c.products.Create(context.Background(), models.Product{
		SKU:      sku,
		Name:     sku,
		Category: "Test",
		Price:    models.PriceFromInt(int64(price)),
		InStock:  true,
	})
	if err != nil {
		return err
	}
	c.bySKU[sku] = p.ID
	return nil
}

func (c *cartFeatureContext) sessionAddsOfInColorAndSize(session string, qty int, sku, color, size string) error {
	id, ok := c.bySKU[sku]
	if !ok {
		return fmt.Errorf("unknown sku %s", sku)
	}
	_, err := c.svc.AddItem(context.Background(), session, id, &color, &size, qty)
	return err
}

func (c *cartFeatureContext) lineFor(session, sku string) (models.CartItemWithProduct, error) {
	items, err := c.svc.Items(context.Background(), session)
	if err != nil {
		return models.CartItemWithProduct{}, err
	}
	for _, item := range items {
		if item.Product.SKU == sku {
			return item, nil
		}
	}
	return models.CartItemWithProduct{}, fmt.Errorf("no line for %s in session %s", sku, session)
}

func (c *cartFeatureContext) sessionSetsTheQuantityOfTo(session, sku string, qty int) error {
	item, err := c.lineFor(session, sku)
	if err != nil {
		return err
	}
	_, err = c.svc.UpdateQuantity(context.Background(), item.ID, qty)
	return err
}

func (c *cartFeatureContext) sessionClearsTheCart(session string) error {
	return c.svc.Clear(context.Background(), session)
}

func (c *cartFeatureContext) sessionHasCartLines(session string, want int) error {
	items, err := c.svc.Items(context.Background(), session)
	if err != nil {
		return err
	}
	if len(items) != want {
		return fmt.Errorf("expected %d cart lines, got %d", want, len(items))
	}
	return nil
}

func (c *cartFeatureContext) theLineForInSessionHasQuantity(sku, session string, want int) error {
	item, err := c.lineFor(session, sku)
	if err != nil {
		return err
	}
	if item.Quantity != want {
		return fmt.Errorf("expected quantity %d, got %d", want, item.Quantity)
	}
	return nil
}

func (c *cartFeatureContext) sessionTotalsAre(session string, subtotal, shipping, tax, total int) error {
	summary, err := c.svc.Summary(context.Background(), session)
	if err != nil {
		return err
	}
	got := summary.Totals
	checks := []struct {
		name string
		want int
		got  models.Price
	}{
		{"subtotal", subtotal, got.Subtotal},
		{"shipping", shipping, got.Shipping},
		{"tax", tax, got.Tax},
		{"total", total, got.Total},
	}
	for _, check := range checks {
		if !check.got.Equal(models.PriceFromInt(int64(check.want)).Decimal) {
			return fmt.Errorf("expected %s %d, got %s", check.name, check.want, check.got.String())
		}
	}
	return nil
}

func InitializeCartScenario(ctx *godog.ScenarioContext) {
	tc := &cartFeatureContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	ctx.Step(`^the catalog contains "([^"]*)" priced (\d+)$`, tc.theCatalogContainsPriced)

	ctx.Step(`^session "([^"]*)" adds (\d+) of "([^"]*)" in color "([^"]*)" and size "([^"]*)"$`, tc.sessionAddsOfInColorAndSize)
	ctx.Step(`^session "([^"]*)" sets the quantity of "([^"]*)" to (-?\d+)$`, tc.sessionSetsTheQuantityOfTo)
	ctx.Step(`^session "([^"]*)" clears the cart$`, tc.sessionClearsTheCart)

	ctx.Step(`^session "([^"]*)" has (\d+) cart lines?$`, tc.sessionHasCartLines)
	ctx.Step(`^the line for "([^"]*)" in session "([^"]*)" has quantity (\d+)$`, tc.theLineForInSessionHasQuantity)
	ctx.Step(`^session "([^"]*)" totals are subtotal (\d+), shipping (\d+), tax (\d+), total (\d+)$`, tc.sessionTotalsAre)
}

func TestCartFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeCartScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../../features/cart.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
