package adapter

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	chat "github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/application/domain"
	repository "github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/persistence/repository/port"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// PgChatRepository implements the chat repository port on Postgres.
// Message ids come from a bigserial column, so insertion order defines the
// total order within a conversation and the cursor contract keys on id.
type PgChatRepository struct {
	pool *pgxpool.Pool
}

func NewPgChatRepository(pool *pgxpool.Pool) *PgChatRepository {
	return &PgChatRepository{pool: pool}
}

var _ repository.ChatRepository = (*PgChatRepository)(nil)

func (r *PgChatRepository) CreateConversation(ctx context.Context, t chat.ConversationType) (*chat.Conversation, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	conv := chat.Conversation{Type: t, CreatedAt: time.Now().UTC()}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO conversations (type, created_at) VALUES ($1, $2) RETURNING id`,
		string(t), conv.CreatedAt,
	).Scan(&conv.ID)
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *PgChatRepository) GetConversation(ctx context.Context, id int64) (*chat.Conversation, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	var conv chat.Conversation
	var typ string
	err := r.pool.QueryRow(ctx,
		`SELECT id, type, created_at FROM conversations WHERE id = $1`, id,
	).Scan(&conv.ID, &typ, &conv.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, chat.ErrConversationNotFound
	}
	if err != nil {
		return nil, err
	}
	conv.Type = chat.ConversationType(typ)

	participants, err := r.ListParticipants(ctx, conv.ID)
	if err != nil {
		return nil, err
	}
	conv.Participants = participants
	return &conv, nil
}

func (r *PgChatRepository) FindPrivateBetween(ctx context.Context, userA, userB string) (*chat.Conversation, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	var id int64
	err := r.pool.QueryRow(ctx, `
		SELECT c.id
		FROM conversations c
		JOIN conversation_participants pa ON pa.conversation_id = c.id AND pa.participant_id = $1
		JOIN conversation_participants pb ON pb.conversation_id = c.id AND pb.participant_id = $2
		WHERE c.type = 'PRIVATE'
		LIMIT 1
	`, userA, userB).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.GetConversation(ctx, id)
}

// CreatePrivateConversation runs conversation plus both participant inserts
// in one transaction so a half-created pair is never observable.
func (r *PgChatRepository) CreatePrivateConversation(ctx context.Context, userA, userB string) (*chat.Conversation, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	conv := chat.Conversation{Type: chat.ConversationTypePrivate, CreatedAt: time.Now().UTC()}
	err = tx.QueryRow(ctx,
		`INSERT INTO conversations (type, created_at) VALUES ($1, $2) RETURNING id`,
		string(conv.Type), conv.CreatedAt,
	).Scan(&conv.ID)
	if err != nil {
		return nil, err
	}

	for _, uid := range []string{userA, userB} {
		var p chat.Participant
		p.ConversationID = conv.ID
		p.ParticipantID = uid
		err = tx.QueryRow(ctx,
			`INSERT INTO conversation_participants (conversation_id, participant_id) VALUES ($1, $2) RETURNING id`,
			conv.ID, uid,
		).Scan(&p.ID)
		if err != nil {
			return nil, mapConstraintError(err)
		}
		conv.Participants = append(conv.Participants, p)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *PgChatRepository) AddParticipant(ctx context.Context, conversationID int64, participantID string) (*chat.Participant, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	p := chat.Participant{ConversationID: conversationID, ParticipantID: participantID}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO conversation_participants (conversation_id, participant_id) VALUES ($1, $2) RETURNING id`,
		conversationID, participantID,
	).Scan(&p.ID)
	if err != nil {
		return nil, mapConstraintError(err)
	}
	return &p, nil
}

func (r *PgChatRepository) ListParticipants(ctx context.Context, conversationID int64) ([]chat.Participant, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, conversation_id, participant_id
		FROM conversation_participants
		WHERE conversation_id = $1
		ORDER BY id
	`, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []chat.Participant
	for rows.Next() {
		var p chat.Participant
		if err := rows.Scan(&p.ID, &p.ConversationID, &p.ParticipantID); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PgChatRepository) ListConversationsForUser(ctx context.Context, userID string) ([]chat.Conversation, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.type, c.created_at
		FROM conversations c
		JOIN conversation_participants p ON p.conversation_id = c.id
		WHERE p.participant_id = $1
		ORDER BY c.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var convs []chat.Conversation
	for rows.Next() {
		var conv chat.Conversation
		var typ string
		if err := rows.Scan(&conv.ID, &typ, &conv.CreatedAt); err != nil {
			return nil, err
		}
		conv.Type = chat.ConversationType(typ)
		convs = append(convs, conv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range convs {
		participants, err := r.ListParticipants(ctx, convs[i].ID)
		if err != nil {
			return nil, err
		}
		convs[i].Participants = participants
	}
	return convs, nil
}

func (r *PgChatRepository) SaveMessage(ctx context.Context, m chat.Message) (*chat.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO messages (conversation_id, sender_id, content, media_url, sent_at, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, m.ConversationID, m.SenderID, m.Content, m.MediaURL, m.SentAt, string(m.Status)).Scan(&m.ID)
	if err != nil {
		return nil, mapConstraintError(err)
	}
	return &m, nil
}

func (r *PgChatRepository) GetMessage(ctx context.Context, id int64) (*chat.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	row := r.pool.QueryRow(ctx, `
		SELECT id, conversation_id, sender_id, content, media_url, sent_at, status
		FROM messages WHERE id = $1
	`, id)
	m, err := scanMessage(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, chat.ErrMessageNotFound
	}
	return m, err
}

func (r *PgChatRepository) UpdateMessageStatus(ctx context.Context, id int64, status chat.MessageStatus) (*chat.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE messages SET status = $2 WHERE id = $1
		RETURNING id, conversation_id, sender_id, content, media_url, sent_at, status
	`, id, string(status))
	m, err := scanMessage(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, chat.ErrMessageNotFound
	}
	return m, err
}

func (r *PgChatRepository) ListMessages(ctx context.Context, conversationID int64, page, size int) ([]chat.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	if size <= 0 {
		size = 100
	}
	if page < 0 {
		page = 0
	}
	// int64 math keeps an attacker-sized page from overflowing the offset.
	offset := int64(page) * int64(size)
	rows, err := r.pool.Query(ctx, `
		SELECT id, conversation_id, sender_id, content, media_url, sent_at, status
		FROM messages
		WHERE conversation_id = $1
		ORDER BY sent_at ASC, id ASC
		LIMIT $2 OFFSET $3
	`, conversationID, size, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMessages(rows)
}

func (r *PgChatRepository) ListMessagesBefore(ctx context.Context, conversationID int64, cursor *int64, limit int) ([]chat.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	if limit <= 0 {
		limit = 50
	}

	var (
		rows pgx.Rows
		err  error
	)
	if cursor == nil {
		rows, err = r.pool.Query(ctx, `
			SELECT id, conversation_id, sender_id, content, media_url, sent_at, status
			FROM messages
			WHERE conversation_id = $1
			ORDER BY id DESC
			LIMIT $2
		`, conversationID, limit)
	} else {
		rows, err = r.pool.Query(ctx, `
			SELECT id, conversation_id, sender_id, content, media_url, sent_at, status
			FROM messages
			WHERE conversation_id = $1 AND id < $2
			ORDER BY id DESC
			LIMIT $3
		`, conversationID, *cursor, limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMessages(rows)
}

func (r *PgChatRepository) FindLatestMessage(ctx context.Context, conversationID int64) (*chat.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	row := r.pool.QueryRow(ctx, `
		SELECT id, conversation_id, sender_id, content, media_url, sent_at, status
		FROM messages
		WHERE conversation_id = $1
		ORDER BY sent_at DESC, id DESC
		LIMIT 1
	`, conversationID)
	m, err := scanMessage(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return m, err
}

func scanMessage(row pgx.Row) (*chat.Message, error) {
	var (
		m      chat.Message
		status string
	)
	if err := row.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Content, &m.MediaURL, &m.SentAt, &status); err != nil {
		return nil, err
	}
	m.Status = chat.MessageStatus(status)
	return &m, nil
}

func collectMessages(rows pgx.Rows) ([]chat.Message, error) {
	var msgs []chat.Message
	for rows.Next() {
		var (
			m      chat.Message
			status string
		)
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Content, &m.MediaURL, &m.SentAt, &status); err != nil {
			return nil, err
		}
		m.Status = chat.MessageStatus(status)
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// mapConstraintError translates Postgres constraint violations into domain
// sentinels: the unique (conversation_id, participant_id) index signals a
// duplicate membership, foreign key failures signal a missing conversation.
func mapConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		return chat.ErrDuplicateParticipant
	case pgForeignKeyViolation:
		return chat.ErrConversationNotFound
	default:
		return err
	}
}
