package participantstore_test

import (
	"context"
	"testing"

	participantstore "github.com/dalemusser/communityhub/internal/app/store/participants"
	"github.com/dalemusser/communityhub/internal/domain/models"
	"github.com/dalemusser/communityhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUpsertDeduplicates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := participantstore.New(db)
	ctx := context.Background()

	userID := primitive.NewObjectID()
	p := models.Participant{
		UserID:    userID,
		Username:  "dragonfly",
		EventName: "Spring Fair",
		TeamName:  "Alpha",
		Role:      models.RoleMember,
	}
	if err := store.Upsert(ctx, p); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	// Re-approval refreshes detail fields instead of adding a second row.
	p.TeamName = "Beta"
	if err := store.Upsert(ctx, p); err != nil {
		t.Fatalf("Upsert again: %v", err)
	}

	got, err := store.ListByEvent(ctx, "Spring Fair")
	if err != nil {
		t.Fatalf("ListByEvent: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d participants, want 1", len(got))
	}
	if got[0].TeamName != "Beta" {
		t.Errorf("team = %q, want Beta", got[0].TeamName)
	}
}

func TestListByUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := participantstore.New(db)
	ctx := context.Background()

	userID := primitive.NewObjectID()
	for _, event := range []string{"Spring Fair", "Autumn Market"} {
		err := store.Upsert(ctx, models.Participant{
			UserID:    userID,
			Username:  "dragonfly",
			EventName: event,
			Role:      models.RoleMember,
		})
		if err != nil {
			t.Fatalf("Upsert: %v", err)
		}
	}
	err := store.Upsert(ctx, models.Participant{
		UserID:    primitive.NewObjectID(),
		Username:  "bee",
		EventName: "Spring Fair",
		Role:      models.RoleMember,
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	got, err := store.ListByUser(ctx, userID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d participations, want 2", len(got))
	}
}
