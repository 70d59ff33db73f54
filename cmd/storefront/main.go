package main

import (
	"context"
	"log"

	"github.com/Kapil927/CU-Shop/internal/api"
	"github.com/Kapil927/CU-Shop/internal/config"
	"github.com/Kapil927/CU-Shop/internal/store"
	"github.com/Kapil927/CU-Shop/internal/view"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Load config: %v", err)
	}

	client, err := api.NewClient(&cfg.API)
	if err != nil {
		log.Fatalf("Create API client: %v", err)
	}

	notify := store.LogNotifier
	session := store.NewSession(client, notify)
	catalog := store.NewCatalog(client, notify)
	cart := store.NewCart(client, session, notify)
	orders := store.NewOrders(client, session, cart, notify)
	wishlist := store.NewWishlist(client, session, notify)
	reviews := store.NewReviews(client, session, notify)
	session.Track(cart, orders, wishlist)

	controller := view.NewController(catalog, cart, orders, reviews, wishlist)
	session.SetNavigator(controller)

	ctx := context.Background()
	if err := controller.Transition(ctx, view.Catalog); err != nil {
		log.Fatalf("Open catalog: %v", err)
	}

	page := catalog.Paginate(cfg.Catalog.PageSize)
	log.Printf("Catalog loaded: %d products, page %d/%d", page.Total, page.Page, page.TotalPages)
	for _, p := range page.Items {
		log.Printf("  #%d %s (%s)", p.ID, p.Name, p.Price.StringFixed(2))
	}
}
