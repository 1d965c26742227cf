package store

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/Anto-dev-perso/Recipedia-sub000/internal/fuzzy"
	"github.com/Anto-dev-perso/Recipedia-sub000/internal/gateway"
	"github.com/Anto-dev-perso/Recipedia-sub000/internal/models"
)

func encodeTagRecord(tag models.Tag) gateway.Record {
	return gateway.Record{"NAME": tag.Name}
}

func decodeTagRecord(record gateway.Record) models.Tag {
	return models.Tag{
		ID:   recordInt64(record, "ID"),
		Name: recordString(record, "NAME"),
	}
}

// AddTag persists a tag. Unlike AddIngredient it does not hand the
// persisted tag back: callers rarely need the assigned ID.
func (store *Store) AddTag(ctx context.Context, tag models.Tag) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	_, err := store.addTagLocked(ctx, tag)
	return err
}

func (store *Store) addTagLocked(ctx context.Context, tag models.Tag) (models.Tag, error) {
	id, err := store.tagsTable.Insert(ctx, encodeTagRecord(tag))
	if err != nil {
		slog.Error("adding tag", "name", tag.Name, "error", err)
		return models.Tag{}, err
	}
	record, err := store.tagsTable.FindByID(ctx, id)
	if err != nil {
		slog.Error("re-fetching tag", "id", id, "error", err)
		return models.Tag{}, err
	}
	persisted := decodeTagRecord(record)
	store.tags = append(store.tags, persisted)
	return persisted, nil
}

// AddMultipleTags inserts in input order, skipping failures.
func (store *Store) AddMultipleTags(ctx context.Context, tags []models.Tag) {
	store.mu.Lock()
	defer store.mu.Unlock()
	for _, tag := range tags {
		if _, err := store.addTagLocked(ctx, tag); err != nil {
			continue
		}
	}
}

func (store *Store) EditTag(ctx context.Context, tag models.Tag) error {
	if tag.ID <= 0 {
		return fmt.Errorf("editing tag %q: %w", tag.Name, ErrMissingID)
	}
	store.mu.Lock()
	defer store.mu.Unlock()

	if err := store.tagsTable.UpdateByID(ctx, tag.ID, encodeTagRecord(tag)); err != nil {
		slog.Error("editing tag", "id", tag.ID, "error", err)
		return err
	}
	for i := range store.tags {
		if store.tags[i].ID == tag.ID {
			store.tags[i] = tag
			break
		}
	}
	return nil
}

func (store *Store) DeleteTag(ctx context.Context, tag models.Tag) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	var err error
	if tag.ID > 0 {
		err = store.tagsTable.DeleteByID(ctx, tag.ID)
	} else {
		err = store.tagsTable.Delete(ctx, gateway.Record{"NAME": tag.Name})
	}
	if err != nil {
		slog.Error("deleting tag", "name", tag.Name, "error", err)
		return err
	}

	kept := store.tags[:0]
	for _, cached := range store.tags {
		if tag.ID > 0 && cached.ID == tag.ID {
			continue
		}
		if tag.ID <= 0 && cached.Name == tag.Name {
			continue
		}
		kept = append(kept, cached)
	}
	store.tags = kept
	return nil
}

func (store *Store) FindSimilarTags(name string) []models.Tag {
	store.mu.Lock()
	defer store.mu.Unlock()
	return fuzzy.FindSimilarTags(name, store.tags)
}

// RandomTags samples up to n distinct tags. With more tags than n it draws
// random indices until n distinct ones are hit; otherwise it shuffles the
// whole cache.
func (store *Store) RandomTags(n int) []models.Tag {
	store.mu.Lock()
	defer store.mu.Unlock()

	if len(store.tags) == 0 {
		slog.Error("no tags to sample from")
		return []models.Tag{}
	}
	if n <= 0 || n >= len(store.tags) {
		shuffled := append([]models.Tag(nil), store.tags...)
		for i := len(shuffled) - 1; i > 0; i-- {
			j := rand.IntN(i + 1)
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		}
		return shuffled
	}

	picked := make(map[int]bool, n)
	result := make([]models.Tag, 0, n)
	for len(result) < n {
		index := rand.IntN(len(store.tags))
		if picked[index] {
			continue
		}
		picked[index] = true
		result = append(result, store.tags[index])
	}
	return result
}

// verifyTagsLocked resolves every tag reference by name, creating missing
// tags. It runs before ingredient verification when persisting a recipe.
func (store *Store) verifyTagsLocked(ctx context.Context, references []models.Tag) ([]models.Tag, error) {
	resolved := make([]models.Tag, 0, len(references))
	for _, reference := range references {
		existing, found := store.tagByNameLocked(reference.Name)
		if !found {
			persisted, err := store.addTagLocked(ctx, reference)
			if err != nil {
				return nil, fmt.Errorf("creating tag %q: %w", reference.Name, err)
			}
			existing = persisted
		}
		resolved = append(resolved, existing)
	}
	return resolved, nil
}

func (store *Store) tagByNameLocked(name string) (models.Tag, bool) {
	for _, tag := range store.tags {
		if strings.EqualFold(tag.Name, name) {
			return tag, true
		}
	}
	return models.Tag{}, false
}
