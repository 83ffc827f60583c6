// Package devlab implements the dev lab page state: the visitor comment board,
// the idea list and the settings panel, persisted as JSON blobs in a
// storage.Store under fixed keys.
package devlab

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/elliot-ia/elliot/internal/config"
	"github.com/elliot-ia/elliot/internal/storage"
)

const (
	CommentsKey = "devlab_comments"
	IdeasKey    = "devlab_ideas"
	SettingsKey = "devlab_settings"

	AnonymousAuthor = "Visitante"
)

var ErrNotFound = errors.New("devlab: item not found")

type Comment struct {
	ID        string    `json:"id" yaml:"id"`
	Author    string    `json:"author" yaml:"author" validate:"max=50"`
	Message   string    `json:"message" yaml:"message" validate:"required,max=500"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

type Idea struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title" validate:"required,max=100"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty" validate:"max=500"`
	Votes       int       `json:"votes" yaml:"votes"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
}

type Settings struct {
	Theme         string `json:"theme" yaml:"theme" validate:"oneof=dark light"`
	Notifications bool   `json:"notifications" yaml:"notifications"`
	AutoSave      bool   `json:"auto_save" yaml:"auto_save"`
	DisplayName   string `json:"display_name,omitempty" yaml:"display_name,omitempty" validate:"max=50"`
}

const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// DefaultSettings are returned until settings are saved for the first time.
func DefaultSettings() Settings {
	return Settings{
		Theme:         ThemeDark,
		Notifications: true,
		AutoSave:      true,
	}
}

// Snapshot is the exported state of the board.
type Snapshot struct {
	Comments   []Comment `json:"comments" yaml:"comments"`
	Ideas      []Idea    `json:"ideas" yaml:"ideas"`
	Settings   Settings  `json:"settings" yaml:"settings"`
	ExportedAt time.Time `json:"exported_at" yaml:"exported_at"`
}

// Board serializes the read-modify-write cycles on its keys.
type Board struct {
	store     storage.Store
	validator *config.Validator
	now       func() time.Time
	newID     func() string

	mu sync.Mutex
}

type Option func(*Board)

func WithClock(now func() time.Time) Option {
	return func(b *Board) {
		b.now = now
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(b *Board) {
		b.newID = newID
	}
}

func NewBoard(store storage.Store, opts ...Option) (*Board, error) {
	v, err := config.NewValidator()
	if err != nil {
		return nil, fmt.Errorf("config.NewValidator() > %w", err)
	}
	b := &Board{
		store:     store,
		validator: v,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// load leaves v untouched when the key was never saved.
func (b *Board) load(ctx context.Context, key string, v any) error {
	contents, err := b.store.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("store.Get(%s) > %w", key, err)
	}
	if err := json.Unmarshal(contents, v); err != nil {
		return fmt.Errorf("json.Unmarshal(%s) > %w", key, err)
	}
	return nil
}

func (b *Board) save(ctx context.Context, key string, v any) error {
	contents, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("json.Marshal(%s) > %w", key, err)
	}
	if err := b.store.Set(ctx, key, contents); err != nil {
		return fmt.Errorf("store.Set(%s) > %w", key, err)
	}
	return nil
}

func (b *Board) comments(ctx context.Context) ([]Comment, error) {
	var comments []Comment
	if err := b.load(ctx, CommentsKey, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// AddComment posts a comment. An empty author falls back to the display name
// of the settings, then to AnonymousAuthor.
func (b *Board) AddComment(ctx context.Context, author, message string) (Comment, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	comment := Comment{
		Author:  strings.TrimSpace(author),
		Message: strings.TrimSpace(message),
	}
	if comment.Author == "" {
		settings, err := b.settings(ctx)
		if err != nil {
			return Comment{}, err
		}
		comment.Author = settings.DisplayName
	}
	if comment.Author == "" {
		comment.Author = AnonymousAuthor
	}
	if err := b.validator.Struct(comment); err != nil {
		return Comment{}, fmt.Errorf("invalid comment: %w", err)
	}

	comments, err := b.comments(ctx)
	if err != nil {
		return Comment{}, err
	}
	comment.ID = b.newID()
	comment.CreatedAt = b.now()
	comments = slices.Insert(comments, 0, comment)
	if err := b.save(ctx, CommentsKey, comments); err != nil {
		return Comment{}, err
	}
	slog.Debug("comment added", slog.String("id", comment.ID), slog.String("author", comment.Author))
	return comment, nil
}

// Comments returns the comments, newest first.
func (b *Board) Comments(ctx context.Context) ([]Comment, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.comments(ctx)
}

func (b *Board) DeleteComment(ctx context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	comments, err := b.comments(ctx)
	if err != nil {
		return err
	}
	i := slices.IndexFunc(comments, func(c Comment) bool { return c.ID == id })
	if i < 0 {
		return fmt.Errorf("comment %s: %w", id, ErrNotFound)
	}
	return b.save(ctx, CommentsKey, slices.Delete(comments, i, i+1))
}

// ClearComments removes every comment and returns how many there were.
func (b *Board) ClearComments(ctx context.Context) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	comments, err := b.comments(ctx)
	if err != nil {
		return 0, err
	}
	if err := b.store.Delete(ctx, CommentsKey); err != nil {
		return 0, fmt.Errorf("store.Delete(%s) > %w", CommentsKey, err)
	}
	return len(comments), nil
}

func (b *Board) ideas(ctx context.Context) ([]Idea, error) {
	var ideas []Idea
	if err := b.load(ctx, IdeasKey, &ideas); err != nil {
		return nil, err
	}
	return ideas, nil
}

func (b *Board) AddIdea(ctx context.Context, title, description string) (Idea, error) {
	idea := Idea{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
	}
	if err := b.validator.Struct(idea); err != nil {
		return Idea{}, fmt.Errorf("invalid idea: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	ideas, err := b.ideas(ctx)
	if err != nil {
		return Idea{}, err
	}
	idea.ID = b.newID()
	idea.CreatedAt = b.now()
	ideas = append(ideas, idea)
	if err := b.save(ctx, IdeasKey, ideas); err != nil {
		return Idea{}, err
	}
	return idea, nil
}

// VoteIdea adds one vote to the idea.
func (b *Board) VoteIdea(ctx context.Context, id string) (Idea, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ideas, err := b.ideas(ctx)
	if err != nil {
		return Idea{}, err
	}
	i := slices.IndexFunc(ideas, func(idea Idea) bool { return idea.ID == id })
	if i < 0 {
		return Idea{}, fmt.Errorf("idea %s: %w", id, ErrNotFound)
	}
	ideas[i].Votes++
	if err := b.save(ctx, IdeasKey, ideas); err != nil {
		return Idea{}, err
	}
	return ideas[i], nil
}

// Ideas returns the ideas ordered by votes, most voted first, then newest first.
func (b *Board) Ideas(ctx context.Context) ([]Idea, error) {
	b.mu.Lock()
	ideas, err := b.ideas(ctx)
	b.mu.Unlock()
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(ideas, func(x, y Idea) int {
		if x.Votes != y.Votes {
			return y.Votes - x.Votes
		}
		return y.CreatedAt.Compare(x.CreatedAt)
	})
	return ideas, nil
}

func (b *Board) settings(ctx context.Context) (Settings, error) {
	settings := DefaultSettings()
	if err := b.load(ctx, SettingsKey, &settings); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

// Settings returns the saved settings, with defaults for anything never saved.
func (b *Board) Settings(ctx context.Context) (Settings, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.settings(ctx)
}

func (b *Board) SaveSettings(ctx context.Context, settings Settings) error {
	settings.DisplayName = strings.TrimSpace(settings.DisplayName)
	if err := b.validator.Struct(settings); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	return b.save(ctx, SettingsKey, settings)
}

// ToggleTheme switches between the dark and light themes.
func (b *Board) ToggleTheme(ctx context.Context) (Settings, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	settings, err := b.settings(ctx)
	if err != nil {
		return Settings{}, err
	}
	if settings.Theme == ThemeLight {
		settings.Theme = ThemeDark
	} else {
		settings.Theme = ThemeLight
	}
	if err := b.save(ctx, SettingsKey, settings); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

// Snapshot collects the whole board for export.
func (b *Board) Snapshot(ctx context.Context) (Snapshot, error) {
	comments, err := b.Comments(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	ideas, err := b.Ideas(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	settings, err := b.Settings(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		Comments:   comments,
		Ideas:      ideas,
		Settings:   settings,
		ExportedAt: b.now(),
	}, nil
}
