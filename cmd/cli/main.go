package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	idemmemory "github.com/mpavic/hexorders/internal/idempotency/memory"
	"github.com/mpavic/hexorders/internal/orders/adapters/logpub"
	ordersmemory "github.com/mpavic/hexorders/internal/orders/adapters/memory"
	"github.com/mpavic/hexorders/internal/orders/app"
	"github.com/mpavic/hexorders/internal/orders/domain"
	"github.com/mpavic/hexorders/internal/orders/metrics"
	"github.com/mpavic/hexorders/internal/telemetry"
)

// itemFlags collects repeated -item flags of the form SKU:PRICE:QTY.
type itemFlags []app.ItemInput

func (f *itemFlags) String() string {
	parts := make([]string, 0, len(*f))
	for _, item := range *f {
		parts = append(parts, fmt.Sprintf("%s:%s:%d", item.SKU, item.UnitPrice, item.Quantity))
	}
	return strings.Join(parts, ",")
}

func (f *itemFlags) Set(value string) error {
	fields := strings.Split(value, ":")
	if len(fields) != 3 {
		return fmt.Errorf("expected SKU:PRICE:QTY, got %q", value)
	}

	price, err := decimal.NewFromString(fields[1])
	if err != nil {
		return fmt.Errorf("invalid price %q: %w", fields[1], err)
	}

	quantity, err := strconv.Atoi(fields[2])
	if err != nil {
		return fmt.Errorf("invalid quantity %q: %w", fields[2], err)
	}

	*f = append(*f, app.ItemInput{
		SKU:       fields[0],
		UnitPrice: price,
		Quantity:  quantity,
	})
	return nil
}

func parseStockLevels(value string) (map[string]int, error) {
	levels := make(map[string]int)
	if value == "" {
		return levels, nil
	}

	for _, pair := range strings.Split(value, ",") {
		sku, qty, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || sku == "" {
			return nil, fmt.Errorf("expected SKU=QTY, got %q", pair)
		}
		parsed, err := strconv.Atoi(qty)
		if err != nil || parsed < 0 {
			return nil, fmt.Errorf("invalid quantity in %q", pair)
		}
		levels[sku] = parsed
	}
	return levels, nil
}

func main() {
	var items itemFlags
	flag.Var(&items, "item", "order line as SKU:PRICE:QTY (repeatable)")
	requestID := flag.String("request-id", "", "optional request identifier")
	stockFlag := flag.String("stock", "", "stock levels as SKU=QTY,... (unlisted SKUs are unlimited)")
	logLevel := flag.String("log-level", "warn", "log level: debug, info, warn, error")
	flag.Parse()

	if err := run(items, *requestID, *stockFlag, *logLevel); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(items []app.ItemInput, requestID, stockFlag, logLevel string) error {
	levels, err := parseStockLevels(stockFlag)
	if err != nil {
		return fmt.Errorf("invalid -stock: %w", err)
	}

	logger := telemetry.NewLoggerTo(os.Stderr, telemetry.ParseLogLevel(logLevel))

	provider := sdkmetric.NewMeterProvider()
	defer func() { _ = provider.Shutdown(context.Background()) }()

	orderMetrics, err := metrics.NewMetrics(provider.Meter("hexorders-cli"))
	if err != nil {
		return fmt.Errorf("create metrics: %w", err)
	}

	service := app.NewService(
		ordersmemory.NewRepository(),
		ordersmemory.NewStockStore(levels),
		logpub.NewPublisher(logger),
		idemmemory.NewStore(),
		logger,
		orderMetrics,
	)

	ctx := context.Background()

	orderID, err := service.PlaceOrder(ctx, app.PlaceOrderInput{
		RequestID: requestID,
		Items:     items,
	})
	if err != nil {
		if orderErr, ok := domain.AsOrderError(err); ok {
			return fmt.Errorf("%s: %s", orderErr.Code, orderErr.Message)
		}
		return err
	}

	order, err := service.GetOrder(ctx, orderID.String())
	if err != nil {
		return err
	}

	fmt.Printf("order placed: id=%s status=%s total=%s\n", order.ID(), order.Status(), order.Total())
	return nil
}
