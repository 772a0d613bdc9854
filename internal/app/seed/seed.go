// Package seed loads the sample shop: two members each holding one book order.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	itemdomain "github.com/Apurer/go-gin-shop-api/internal/domains/items/domain"
	itemports "github.com/Apurer/go-gin-shop-api/internal/domains/items/ports"
	memberdomain "github.com/Apurer/go-gin-shop-api/internal/domains/members/domain"
	memberports "github.com/Apurer/go-gin-shop-api/internal/domains/members/ports"
	ordertypes "github.com/Apurer/go-gin-shop-api/internal/domains/orders/application/types"
	orderports "github.com/Apurer/go-gin-shop-api/internal/domains/orders/ports"
)

const sampleStock = 100

type book struct {
	name  string
	price int64
	count int64
}

type customer struct {
	name    string
	address memberdomain.Address
	books   []book
}

var sample = []customer{
	{
		name:    "userA",
		address: memberdomain.NewAddress("Seoul", "32", "1323"),
		books:   []book{{"JPA1 BOOK", 10000, 1}, {"JPA2 BOOK", 20000, 2}},
	},
	{
		name:    "userB",
		address: memberdomain.NewAddress("Busan", "555", "5432"),
		books:   []book{{"SPRING1 BOOK", 30000, 3}, {"SPRING2 BOOK", 40000, 4}},
	},
}

// Services are the use cases the loader goes through, so seeded data obeys
// the same rules as API traffic.
type Services struct {
	Members memberports.Service
	Items   itemports.Service
	Orders  orderports.Service
}

// Result lists the orders created by Load.
type Result struct {
	OrderIDs []int64
}

// Load creates the sample members, books and orders. A store that already
// holds a sample member is left alone.
func Load(ctx context.Context, svc Services, logger *slog.Logger) (Result, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	existing, err := svc.Members.FindMembers(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("list members: %w", err)
	}
	for _, m := range existing {
		if m.Name == sample[0].name {
			logger.InfoContext(ctx, "sample data already present, skipping seed")
			return Result{}, nil
		}
	}

	var result Result
	for _, c := range sample {
		member, err := memberdomain.NewMember(c.name, c.address)
		if err != nil {
			return result, err
		}
		memberID, err := svc.Members.Join(ctx, member)
		if err != nil {
			return result, fmt.Errorf("join %s: %w", c.name, err)
		}
		input := ordertypes.PlaceOrderInput{MemberID: memberID}
		for _, b := range c.books {
			item, err := itemdomain.NewBook(b.name, b.price, sampleStock, "", "")
			if err != nil {
				return result, err
			}
			saved, err := svc.Items.SaveItem(ctx, item)
			if err != nil {
				return result, fmt.Errorf("save %s: %w", b.name, err)
			}
			input.Lines = append(input.Lines, ordertypes.OrderLine{ItemID: saved.ID, Count: b.count})
		}
		placed, err := svc.Orders.PlaceOrder(ctx, input)
		if err != nil {
			return result, fmt.Errorf("order for %s: %w", c.name, err)
		}
		result.OrderIDs = append(result.OrderIDs, placed.OrderID)
	}
	logger.InfoContext(ctx, "sample data loaded", slog.Any("order.ids", result.OrderIDs))
	return result, nil
}
