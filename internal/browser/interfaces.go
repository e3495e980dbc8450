package browser

import (
	"context"
	"tabsleep/internal/structures"
)

type TabServiceInterface interface {
	Query(ctx context.Context, query structures.TabQuery) ([]structures.Tab, error)
	Discard(ctx context.Context, tabID int) error
	Update(ctx context.Context, tabID int, update structures.TabUpdate) error
}

type NotifierInterface interface {
	Notify(ctx context.Context, notification structures.Notification) error
}
