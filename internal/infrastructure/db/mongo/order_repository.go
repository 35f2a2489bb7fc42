package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/supfront/commerce-system/internal/core/domain"
	"github.com/supfront/commerce-system/internal/core/ports"
)

const orderCollection = "orders"

type MongoOrderRepository struct {
	coll *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *MongoOrderRepository {
	return &MongoOrderRepository{coll: db.Collection(orderCollection)}
}

type mongoOrderItem struct {
	ID          string  `bson:"id"`
	Name        string  `bson:"name"`
	Description string  `bson:"description"`
	UnitPrice   float64 `bson:"unit_price"`
	Quantity    int     `bson:"quantity"`
	ImageURL    string  `bson:"image_url"`
}

type mongoShipping struct {
	FirstName string `bson:"first_name"`
	LastName  string `bson:"last_name"`
	Email     string `bson:"email"`
	Phone     string `bson:"phone"`
	Street    string `bson:"street"`
	City      string `bson:"city"`
	State     string `bson:"state"`
	ZipCode   string `bson:"zip_code"`
	Country   string `bson:"country"`
	Method    string `bson:"method"`
}

type mongoTotals struct {
	Subtotal float64 `bson:"subtotal"`
	Shipping float64 `bson:"shipping"`
	Tax      float64 `bson:"tax"`
	Discount float64 `bson:"discount"`
	Total    float64 `bson:"total"`
}

type mongoOrder struct {
	ID          string           `bson:"_id"`
	OrderNumber string           `bson:"order_number"`
	UserID      string           `bson:"user_id,omitempty"`
	Items       []mongoOrderItem `bson:"items"`
	Shipping    mongoShipping    `bson:"shipping"`
	Totals      mongoTotals      `bson:"totals"`
	PlacedAt    int64            `bson:"placed_at"`
}

func (r *MongoOrderRepository) Create(ctx context.Context, o *domain.Order) error {
	doc := toMongoOrder(o)
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *MongoOrderRepository) FindByNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	var mo mongoOrder
	if err := r.coll.FindOne(ctx, bson.M{"order_number": orderNumber}).Decode(&mo); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return fromMongoOrder(&mo), nil
}

func (r *MongoOrderRepository) List(ctx context.Context, filter ports.ListOrdersFilter) ([]*domain.Order, int64, error) {
	query := bson.M{}
	if filter.UserID != "" {
		query["user_id"] = filter.UserID
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	limit := int64(filter.Limit)
	if limit <= 0 {
		limit = 20
	}
	page := int64(filter.Page)
	if page < 1 {
		page = 1
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "placed_at", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Order
	for cur.Next(ctx) {
		var mo mongoOrder
		if err := cur.Decode(&mo); err != nil {
			return nil, 0, fmt.Errorf("decode order: %w", err)
		}
		out = append(out, fromMongoOrder(&mo))
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}

	return out, total, nil
}

func toMongoOrder(o *domain.Order) mongoOrder {
	items := make([]mongoOrderItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, mongoOrderItem{
			ID:          it.ID,
			Name:        it.Name,
			Description: it.Description,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
			ImageURL:    it.ImageURL,
		})
	}
	return mongoOrder{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		UserID:      o.UserID,
		Items:       items,
		Shipping: mongoShipping{
			FirstName: o.Shipping.FirstName,
			LastName:  o.Shipping.LastName,
			Email:     o.Shipping.Email,
			Phone:     o.Shipping.Phone,
			Street:    o.Shipping.Street,
			City:      o.Shipping.City,
			State:     o.Shipping.State,
			ZipCode:   o.Shipping.ZipCode,
			Country:   o.Shipping.Country,
			Method:    string(o.Shipping.Method),
		},
		Totals: mongoTotals{
			Subtotal: o.Totals.Subtotal,
			Shipping: o.Totals.Shipping,
			Tax:      o.Totals.Tax,
			Discount: o.Totals.Discount,
			Total:    o.Totals.Total,
		},
		PlacedAt: o.PlacedAt.Unix(),
	}
}

func fromMongoOrder(mo *mongoOrder) *domain.Order {
	items := make([]domain.CartItem, 0, len(mo.Items))
	for _, it := range mo.Items {
		items = append(items, domain.CartItem{
			ID:          it.ID,
			Name:        it.Name,
			Description: it.Description,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
			ImageURL:    it.ImageURL,
		})
	}
	return &domain.Order{
		ID:          mo.ID,
		OrderNumber: mo.OrderNumber,
		UserID:      mo.UserID,
		Items:       items,
		Shipping: domain.ShippingInfo{
			FirstName: mo.Shipping.FirstName,
			LastName:  mo.Shipping.LastName,
			Email:     mo.Shipping.Email,
			Phone:     mo.Shipping.Phone,
			Street:    mo.Shipping.Street,
			City:      mo.Shipping.City,
			State:     mo.Shipping.State,
			ZipCode:   mo.Shipping.ZipCode,
			Country:   mo.Shipping.Country,
			Method:    domain.ShippingMethod(mo.Shipping.Method),
		},
		Totals: domain.Totals{
			Subtotal: mo.Totals.Subtotal,
			Shipping: mo.Totals.Shipping,
			Tax:      mo.Totals.Tax,
			Discount: mo.Totals.Discount,
			Total:    mo.Totals.Total,
		},
		PlacedAt: unixToTime(mo.PlacedAt),
	}
}
