package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/tripwing/tripwing/internal/itinerary"
	"github.com/tripwing/tripwing/types"
)

// FileTripStore implements TripStore with one JSON file per trip under a
// base directory. Writes go through a temp file and rename so a crash
// never leaves a half-written trip behind.
type FileTripStore struct {
	fs       afero.Fs
	baseDir  string
	validate *validator.Validate

	mu sync.RWMutex
}

// NewFileTripStore creates a trip store rooted at baseDir on the given
// filesystem. The directory is created if missing.
func NewFileTripStore(fs afero.Fs, baseDir string) (*FileTripStore, error) {
	if err := fs.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create trips dir %s: %w", baseDir, err)
	}
	return &FileTripStore{
		fs:       fs,
		baseDir:  baseDir,
		validate: validator.New(),
	}, nil
}

// NewOSTripStore creates a trip store on the real filesystem.
func NewOSTripStore(baseDir string) (*FileTripStore, error) {
	return NewFileTripStore(afero.NewOsFs(), baseDir)
}

func (s *FileTripStore) tripPath(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

// CreateTrip implements TripStore.
func (s *FileTripStore) CreateTrip(ctx context.Context, trip Trip) (Trip, error) {
	if trip.ID == "" {
		trip.ID = uuid.NewString()
	}
	for i := range trip.Days {
		if trip.Days[i].ID == "" {
			trip.Days[i].ID = uuid.NewString()
		}
	}
	if err := s.validate.Struct(trip); err != nil {
		return Trip{}, fmt.Errorf("validate trip: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if exists, _ := afero.Exists(s.fs, s.tripPath(trip.ID)); exists {
		return Trip{}, fmt.Errorf("trip %s already exists", trip.ID)
	}
	if err := s.writeTrip(trip); err != nil {
		return Trip{}, err
	}
	return trip, nil
}

// GetTrip implements TripStore.
func (s *FileTripStore) GetTrip(ctx context.Context, id string) (Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.readTrip(id)
}

// ListTrips implements TripStore.
func (s *FileTripStore) ListTrips(ctx context.Context) ([]Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := afero.ReadDir(s.fs, s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read trips dir: %w", err)
	}

	var trips []Trip
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		trip, err := s.readTrip(strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}
	sort.Slice(trips, func(i, j int) bool { return trips[i].ID < trips[j].ID })
	return trips, nil
}

// DeleteTrip implements TripStore.
func (s *FileTripStore) DeleteTrip(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.tripPath(id)
	exists, err := afero.Exists(s.fs, path)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("trip %s: %w", id, types.ErrNotFound)
	}
	return s.fs.Remove(path)
}

// SaveItems implements TripStore. All items must belong to the same
// trip; the batch is committed in one write.
func (s *FileTripStore) SaveItems(ctx context.Context, items []itinerary.TripItem) error {
	if len(items) == 0 {
		return nil
	}
	tripID := items[0].TripID
	for _, item := range items {
		if item.TripID != tripID {
			return fmt.Errorf("items span trips %s and %s", tripID, item.TripID)
		}
		if err := s.validate.Struct(item); err != nil {
			return fmt.Errorf("validate item %s: %w", item.ID, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	trip, err := s.readTrip(tripID)
	if err != nil {
		return err
	}
	trip.Items = append(trip.Items, items...)
	return s.writeTrip(trip)
}

// UpdateItem implements TripStore.
func (s *FileTripStore) UpdateItem(ctx context.Context, item itinerary.TripItem) error {
	if err := s.validate.Struct(item); err != nil {
		return fmt.Errorf("validate item %s: %w", item.ID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	trip, err := s.readTrip(item.TripID)
	if err != nil {
		return err
	}
	for i := range trip.Items {
		if trip.Items[i].ID == item.ID {
			trip.Items[i] = item
			return s.writeTrip(trip)
		}
	}
	return fmt.Errorf("item %s in trip %s: %w", item.ID, item.TripID, types.ErrNotFound)
}

func (s *FileTripStore) readTrip(id string) (Trip, error) {
	data, err := afero.ReadFile(s.fs, s.tripPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return Trip{}, fmt.Errorf("trip %s: %w", id, types.ErrNotFound)
		}
		return Trip{}, fmt.Errorf("read trip %s: %w", id, err)
	}
	var trip Trip
	if err := json.Unmarshal(data, &trip); err != nil {
		return Trip{}, fmt.Errorf("parse trip %s: %w", id, err)
	}
	return trip, nil
}

func (s *FileTripStore) writeTrip(trip Trip) error {
	data, err := json.MarshalIndent(trip, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal trip %s: %w", trip.ID, err)
	}

	path := s.tripPath(trip.ID)
	tmp := path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("write trip %s: %w", trip.ID, err)
	}
	if err := s.fs.Rename(tmp, path); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("commit trip %s: %w", trip.ID, err)
	}
	return nil
}
