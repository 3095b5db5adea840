package store

// GardenStore defines the interface for garden persistence operations.
// Consumers should depend on this interface rather than the concrete *DB type
// to facilitate testing with mocks.
type GardenStore interface {
	EnsureUser(name, token string) (*UserRow, error)
	UserByToken(token string) (*UserRow, error)

	CreateNote(userID, title, content, stage string, isPublic bool) (*NoteRow, error)
	UpdateNote(id, userID, title, content, stage string, isPublic, regenSlug bool) (*NoteRow, error)
	GetNote(id, userID string) (*NoteRow, error)
	DeleteNote(id, userID string) error
	ListNotes(userID string, limit int, orderBy, stage, tag string) ([]NoteListRow, error)
	NoteStats(userID string) (*Stats, error)
	RandomNoteID(userID string) (string, error)

	ReconcileLinks(noteID, userID string, titles []string) ([]NoteRow, error)
	ListLinksForNote(noteID string) (outgoing, incoming []NoteRef, err error)
	Graph(userID string) ([]GraphNode, []GraphLink, error)

	SetNoteTags(noteID, userID string, names []string) ([]TagRow, error)
	TagsForNote(noteID string) ([]TagRow, error)
	ListTags(userID string) ([]TagWithCount, error)
	NotesByTag(userID, name string) ([]TagNoteRow, error)

	SearchNotes(userID, query string, limit int) ([]SearchResult, error)

	CreateSnippet(userID, title, content, language, description, tags string) (*SnippetRow, error)
	GetSnippet(id, userID string) (*SnippetRow, error)
	UpdateSnippet(s *SnippetRow) error
	DeleteSnippet(id, userID string) error
	ListSnippets(userID string) ([]SnippetRow, error)

	CreateReadingItem(userID, url, title, note string) (*ReadingRow, error)
	GetReadingItem(id, userID string) (*ReadingRow, error)
	UpdateReadingItem(r *ReadingRow) error
	DeleteReadingItem(id, userID string) error
	ListReadingItems(userID string) ([]ReadingRow, error)

	GetDailyNote(userID, day string) (*DailyRow, error)
	UpsertDailyNote(userID, day, content string) (*DailyRow, error)

	Close() error
}

// Verify *DB satisfies GardenStore at compile time.
var _ GardenStore = (*DB)(nil)
