// Seeder inserts a realistic sample dataset for development environments:
// properties, clients, viewings and inquiries.
package main

import (
	"context"
	"flag"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/sync/semaphore"

	"github.com/ZaidAr98/PropTrack/internal/adapters/observability"
	"github.com/ZaidAr98/PropTrack/internal/domain"
	"github.com/ZaidAr98/PropTrack/internal/shared"
	mongostore "github.com/ZaidAr98/PropTrack/internal/storage/mongo"
)

func main() {
	drop := flag.Bool("drop", false, "wipe collections before seeding")
	flag.Parse()

	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)
	log.Info().Int("workers", cfg.SeedWorkers).Msg("seeder starting")

	store, err := mongostore.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect failed")
	}
	defer store.Close(ctx)

	if *drop {
		if err := store.DropData(ctx); err != nil {
			log.Fatal().Err(err).Msg("drop failed")
		}
		log.Info().Msg("collections dropped")
	}
	if err := store.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("index bootstrap failed")
	}

	properties := store.Properties()
	clients := store.Clients()
	viewings := store.Viewings()
	inquiries := store.Inquiries()

	// properties in parallel, bounded by a weighted semaphore
	sem := semaphore.NewWeighted(int64(cfg.SeedWorkers))
	var wg sync.WaitGroup
	propertyIDs := make([]bson.ObjectID, len(sampleProperties))

	for i := range sampleProperties {
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer sem.Release(1)

			p := sampleProperties[i]
			if err := properties.Insert(ctx, &p); err != nil {
				log.Warn().Err(err).Str("title", p.Title).Msg("property seed failed")
				return
			}
			propertyIDs[i] = p.ID
			log.Info().Str("title", p.Title).Msg("property seeded")
		}(i)
	}
	wg.Wait()

	clientIDs := make([]bson.ObjectID, 0, len(sampleClients))
	for _, c := range sampleClients {
		created, err := clients.Upsert(ctx, c.Name, c.Email, c.Phone)
		if err != nil {
			log.Warn().Err(err).Str("email", c.Email).Msg("client seed failed")
			continue
		}
		clientIDs = append(clientIDs, created.ID)
	}

	if len(propertyIDs) == 0 || len(clientIDs) == 0 {
		log.Fatal().Msg("nothing to reference; aborting viewing/inquiry seed")
	}

	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Truncate(24 * time.Hour)
	for i, slot := range []string{"10:00", "11:30", "14:00", "16:30"} {
		v := domain.Viewing{
			PropertyID: propertyIDs[i%len(propertyIDs)],
			ClientID:   clientIDs[i%len(clientIDs)],
			Date:       tomorrow.AddDate(0, 0, i),
			Time:       slot,
			Status:     domain.ViewingScheduled,
		}
		if err := viewings.Insert(ctx, &v); err != nil {
			log.Warn().Err(err).Msg("viewing seed failed")
		}
	}

	for i, msg := range sampleMessages {
		in := domain.Inquiry{
			ClientID:   clientIDs[i%len(clientIDs)],
			PropertyID: propertyIDs[i%len(propertyIDs)],
			Message:    msg,
		}
		if err := inquiries.Insert(ctx, &in); err != nil {
			log.Warn().Err(err).Msg("inquiry seed failed")
		}
	}

	log.Info().Msg("seeding completed")
}

var sampleProperties = []domain.Property{
	{
		Title:       "Modern Downtown Apartment",
		Description: "Luxurious 2-bedroom apartment in the heart of downtown with stunning city views, premium finishes, and access to building amenities including gym and rooftop terrace.",
		Price:       450000,
		Type:        domain.PropertySale,
		Location:    "Downtown, NYC",
		Bedrooms:    2,
		Bathrooms:   2,
		Area:        1200,
		Amenities:   []string{"Gym", "Rooftop Terrace", "Concierge", "Parking"},
		Images:      []string{"https://images.unsplash.com/photo-1512917774080-9991f1c4c750?w=800"},
	},
	{
		Title:       "Marina Walk Penthouse",
		Description: "Stunning penthouse in Dubai Marina with 360-degree views of the marina and sea. Private rooftop terrace, jacuzzi, and a premium Italian kitchen.",
		Price:       3500000,
		Type:        domain.PropertySale,
		Location:    "Dubai Marina, Dubai",
		Bedrooms:    4,
		Bathrooms:   5,
		Area:        4200,
		Amenities:   []string{"Rooftop Terrace", "Jacuzzi", "Marina View", "24/7 Security"},
		Images:      []string{"https://images.unsplash.com/photo-1560448204-e02f11c3d0e2?w=800"},
	},
	{
		Title:       "Modern Studio in Business Bay",
		Description: "Contemporary studio apartment with canal views. Fully furnished with modern appliances, gym access, and walking distance to Dubai Mall.",
		Price:       8500,
		Type:        domain.PropertyRent,
		Location:    "Business Bay, Dubai",
		Bedrooms:    1,
		Bathrooms:   1,
		Area:        750,
		Amenities:   []string{"Canal View", "Fully Furnished", "Gym", "Metro Access"},
		Images:      []string{"https://images.unsplash.com/photo-1522708323590-d24dbb6b0267?w=800"},
	},
	{
		Title:       "Palm Jumeirah Villa with Private Beach",
		Description: "Exquisite 5-bedroom villa with private beach access, swimming pool, and panoramic views of the Arabian Gulf. Fully furnished with designer interiors.",
		Price:       45000,
		Type:        domain.PropertyRent,
		Location:    "Palm Jumeirah, Dubai",
		Bedrooms:    5,
		Bathrooms:   6,
		Area:        6500,
		Amenities:   []string{"Private Beach", "Swimming Pool", "Garden"},
		Images:      []string{"https://images.unsplash.com/photo-1613490493576-7fde63acd811?w=800"},
	},
}

var sampleClients = []domain.Client{
	{Name: "Sarah Mitchell", Email: "sarah.mitchell@example.com", Phone: "+971501234567"},
	{Name: "Omar Haddad", Email: "omar.haddad@example.com", Phone: "+971529876543"},
	{Name: "Elena Petrova", Email: "elena.petrova@example.com", Phone: "+971505551234"},
}

var sampleMessages = []string{
	"Hi, I'm interested in this property. Is it still available?",
	"Could you share the service charges and handover date?",
	"I'd like to arrange a viewing this weekend if possible.",
	"Is the price negotiable for a cash buyer?",
}
