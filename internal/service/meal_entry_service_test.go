package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/humngry/meal-tracker/internal/domain"
)

func newMealEntryFixture(t *testing.T) (MealEntryService, uuid.UUID, *MockMealEntryRepository, *MockProgressRepository) {
	t.Helper()
	userID := uuid.New()
	userRepo := NewMockUserRepository()
	userRepo.users[userID] = &domain.User{ID: userID, Timezone: "UTC"}
	mealRepo := NewMockMealEntryRepository()
	progressRepo := NewMockProgressRepository()
	return NewMealEntryService(mealRepo, userRepo, progressRepo), userID, mealRepo, progressRepo
}

func TestMealEntryService_Create(t *testing.T) {
	svc, userID, _, progressRepo := newMealEntryFixture(t)

	eatenAt := time.Date(2024, 1, 15, 12, 30, 0, 0, time.UTC)
	entry, err := svc.Create(context.Background(), userID, &domain.CreateMealEntryRequest{
		What:     "Chicken salad",
		Time:     &eatenAt,
		Calories: floatPtr(450),
		Protein:  floatPtr(32),
		Fullness: intPtr(4),
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if entry.ID == uuid.Nil {
		t.Error("expected an assigned ID")
	}
	if entry.Amount != domain.PortionMedium {
		t.Errorf("Amount = %v, want medium default", entry.Amount)
	}
	if !entry.Time.Equal(eatenAt) {
		t.Errorf("Time = %v, want %v", entry.Time, eatenAt)
	}
	if entry.NextEatAt == nil {
		t.Fatal("expected a hunger prediction")
	}
	if !entry.NextEatAt.After(eatenAt) {
		t.Errorf("NextEatAt = %v, want after %v", entry.NextEatAt, eatenAt)
	}

	// Logging awards XP through the stored aggregate
	progress, err := progressRepo.GetProgress(context.Background(), userID)
	if err != nil {
		t.Fatalf("GetProgress() error = %v", err)
	}
	if progress.TotalXP != XPPerMealLog {
		t.Errorf("TotalXP = %d, want %d", progress.TotalXP, XPPerMealLog)
	}
}

func TestMealEntryService_Create_UnknownUser(t *testing.T) {
	svc, _, _, _ := newMealEntryFixture(t)

	_, err := svc.Create(context.Background(), uuid.New(), &domain.CreateMealEntryRequest{What: "Toast"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestMealEntryService_Get_Ownership(t *testing.T) {
	svc, userID, mealRepo, _ := newMealEntryFixture(t)

	other := &domain.MealEntry{ID: uuid.New(), UserID: uuid.New(), What: "Not yours", Time: time.Now()}
	mealRepo.entries[other.ID] = other

	mine := &domain.MealEntry{ID: uuid.New(), UserID: userID, What: "Mine", Time: time.Now()}
	mealRepo.entries[mine.ID] = mine

	got, err := svc.Get(context.Background(), userID, mine.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.What != "Mine" {
		t.Errorf("What = %q", got.What)
	}

	// Another user's entry reads as missing, not forbidden
	if _, err := svc.Get(context.Background(), userID, other.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestMealEntryService_Update(t *testing.T) {
	svc, userID, mealRepo, _ := newMealEntryFixture(t)

	entry := &domain.MealEntry{
		ID: uuid.New(), UserID: userID, What: "Soup", Amount: domain.PortionMedium,
		Time: time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC), Calories: floatPtr(200),
	}
	mealRepo.entries[entry.ID] = entry

	updated, err := svc.Update(context.Background(), userID, entry.ID, &domain.UpdateMealEntryRequest{
		What:     strPtr("Soup with bread"),
		Calories: floatPtr(800),
		Protein:  floatPtr(40),
		Fat:      floatPtr(25),
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if updated.What != "Soup with bread" {
		t.Errorf("What = %q", updated.What)
	}
	if updated.CaloriesOrZero() != 800 {
		t.Errorf("Calories = %v", updated.CaloriesOrZero())
	}
	// Untouched fields survive
	if updated.Amount != domain.PortionMedium {
		t.Errorf("Amount = %v", updated.Amount)
	}
	if updated.NextEatAt == nil {
		t.Fatal("expected the prediction to be refreshed")
	}

	if _, err := svc.Update(context.Background(), uuid.New(), entry.ID, &domain.UpdateMealEntryRequest{}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("unknown user error = %v, want ErrNotFound", err)
	}
}

func TestMealEntryService_Delete(t *testing.T) {
	svc, userID, mealRepo, _ := newMealEntryFixture(t)

	entry := &domain.MealEntry{ID: uuid.New(), UserID: userID, What: "Snack", Time: time.Now()}
	mealRepo.entries[entry.ID] = entry

	if err := svc.Delete(context.Background(), userID, entry.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok := mealRepo.entries[entry.ID]; ok {
		t.Error("entry still present after delete")
	}

	if err := svc.Delete(context.Background(), userID, entry.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second delete error = %v, want ErrNotFound", err)
	}
}

func TestMealEntryService_List_Pagination(t *testing.T) {
	svc, userID, mealRepo, _ := newMealEntryFixture(t)

	base := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		entry := &domain.MealEntry{
			ID:     uuid.New(),
			UserID: userID,
			What:   fmt.Sprintf("Meal %d", i),
			Time:   base.Add(time.Duration(i) * time.Hour),
		}
		mealRepo.entries[entry.ID] = entry
	}

	resp, err := svc.List(context.Background(), userID, domain.MealEntryFilter{Limit: 2})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if len(resp.Data) != 2 {
		t.Fatalf("got %d entries, want 2", len(resp.Data))
	}
	// Newest first
	if resp.Data[0].What != "Meal 4" || resp.Data[1].What != "Meal 3" {
		t.Errorf("page order = %q, %q", resp.Data[0].What, resp.Data[1].What)
	}
	if !resp.Pagination.HasMore || resp.Pagination.NextCursor == "" {
		t.Errorf("pagination = %+v", resp.Pagination)
	}

	// A window covering only the oldest entries has no further page
	from := base
	to := base.Add(90 * time.Minute)
	resp, err = svc.List(context.Background(), userID, domain.MealEntryFilter{From: &from, To: &to})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(resp.Data) != 2 || resp.Pagination.HasMore {
		t.Errorf("window result = %d entries, pagination %+v", len(resp.Data), resp.Pagination)
	}
}

func TestMealEntryService_List_UnknownUser(t *testing.T) {
	svc, _, _, _ := newMealEntryFixture(t)

	if _, err := svc.List(context.Background(), uuid.New(), domain.MealEntryFilter{}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
