package store

import (
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"git.lost.host/meutraa/stepedit/internal/game"
)

var ErrNotFound = errors.New("song version not found")

type DefaultStore struct {
	// Path of the database file, ":memory:" for a private in-memory one.
	Path   string
	Logger *slog.Logger

	db  *sql.DB
	now func() time.Time
}

func (s *DefaultStore) Init() error {
	db, err := sql.Open("sqlite3", s.Path)
	if err != nil {
		return err
	}
	// an in-memory database only lives as long as its connection
	db.SetMaxOpenConns(1)

	initStatement := `
	create table if not exists songs
	  (
		  id text not null primary key,
		  sum text not null,
		  title text not null,
		  charts integer not null,
		  saved_at integer not null,
		  document blob not null
	  );
	create index if not exists songs_title on songs(title, saved_at);
	create index if not exists songs_sum on songs(sum);
	`
	if _, err := db.Exec(initStatement); nil != err {
		db.Close()
		return fmt.Errorf("unable to create songs table: %w", err)
	}

	s.db = db
	if s.now == nil {
		s.now = time.Now
	}
	if s.Logger == nil {
		s.Logger = slog.New(slog.DiscardHandler)
	}
	return nil
}

func (s *DefaultStore) Deinit() {
	if nil != s.db {
		if err := s.db.Close(); nil != err {
			s.Logger.Warn("unable to close database", slog.String("path", s.Path), slog.Any("error", err))
		}
		s.db = nil
	}
}

func hashDocument(data []byte) string {
	sum := sha256.Sum256(data)
	return base64.StdEncoding.EncodeToString(sum[:])
}

func (s *DefaultStore) Save(song game.Song) (Record, error) {
	data, err := json.Marshal(song)
	if nil != err {
		return Record{}, fmt.Errorf("unable to marshal song: %w", err)
	}
	sum := hashDocument(data)

	existing, err := s.query("select id, sum, title, charts, saved_at, length(document) from songs where sum = ? limit 1", sum)
	if nil != err {
		return Record{}, err
	}
	if len(existing) > 0 {
		s.Logger.Debug("song unchanged", slog.String("title", song.Title), slog.String("sum", sum))
		return existing[0], nil
	}

	record := Record{
		ID:      uuid.New(),
		Sum:     sum,
		Title:   song.Title,
		Charts:  len(song.Charts),
		Size:    len(data),
		SavedAt: s.now(),
	}
	_, err = s.db.Exec("insert into songs(id, sum, title, charts, saved_at, document) values(?, ?, ?, ?, ?, ?)",
		record.ID.String(), record.Sum, record.Title, record.Charts, record.SavedAt.UnixNano(), data)
	if nil != err {
		return Record{}, fmt.Errorf("unable to save song: %w", err)
	}
	s.Logger.Info("saved song", slog.String("title", song.Title), slog.String("id", record.ID.String()))
	return record, nil
}

func (s *DefaultStore) Load(id uuid.UUID) (game.Song, error) {
	var data []byte
	err := s.db.QueryRow("select document from songs where id = ?", id.String()).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return game.Song{}, fmt.Errorf("%v: %w", id, ErrNotFound)
	}
	if nil != err {
		return game.Song{}, fmt.Errorf("unable to load song: %w", err)
	}
	var song game.Song
	if err := json.Unmarshal(data, &song); nil != err {
		return game.Song{}, fmt.Errorf("unable to unmarshal song %v: %w", id, err)
	}
	return song, nil
}

func (s *DefaultStore) History(title string) ([]Record, error) {
	return s.query("select id, sum, title, charts, saved_at, length(document) from songs where title = ? order by saved_at desc, rowid desc", title)
}

func (s *DefaultStore) query(query string, args ...any) ([]Record, error) {
	records := []Record{}
	rows, err := s.db.Query(query, args...)
	if nil != err {
		return nil, fmt.Errorf("unable to query songs: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		var savedAt int64
		var r Record
		if err := rows.Scan(&id, &r.Sum, &r.Title, &r.Charts, &savedAt, &r.Size); nil != err {
			return nil, fmt.Errorf("unable to scan song: %w", err)
		}
		parsed, err := uuid.Parse(id)
		if nil != err {
			s.Logger.Warn("skipping song with malformed id", slog.String("id", id))
			continue
		}
		r.ID = parsed
		r.SavedAt = time.Unix(0, savedAt)
		records = append(records, r)
	}
	return records, rows.Err()
}
