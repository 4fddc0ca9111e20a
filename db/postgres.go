package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pdag/league-page/model"
)

var (
	ErrProfileNotFound error = errors.New("manager profile not found")
)

func New(ctx context.Context, connString string, clock clock.Clock) (DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &postgresDB{pool: pool, clock: clock}, nil
}

type postgresDB struct {
	pool  *pgxpool.Pool
	clock clock.Clock
}

const profileColumns = `sleeper_user_id, sleeper_username, name, location, bio,
		photo_url, fantasy_start_year, favorite_team, mode, rival_name,
		rival_manager_id, favorite_player_id, value_position, rookie_or_vets,
		philosophy, trading_scale, preferred_contact, is_verified,
		verification_code, verification_expires_at, session_token,
		session_expires_at, last_verified_at, created_at, updated_at`

func (db *postgresDB) GetProfile(ctx context.Context, sleeperUserID string) (*model.ManagerProfile, error) {
	const query = `SELECT ` + profileColumns + ` FROM manager_profiles WHERE sleeper_user_id=@id`

	row := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"id": sleeperUserID})
	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("error scanning manager profile %s: %w", sleeperUserID, err)
	}
	return p, nil
}

func (db *postgresDB) UpsertPendingVerification(ctx context.Context, v *model.PendingVerification) error {
	if v == nil {
		return errors.New("UpsertPendingVerification - verification is nil")
	}

	const upsert = `INSERT INTO manager_profiles (
			sleeper_user_id,
			sleeper_username,
			verification_code,
			verification_expires_at,
			is_verified,
			updated_at
		) VALUES (
			@id,
			@username,
			@code,
			@expires,
			FALSE,
			@updated
		) ON CONFLICT (sleeper_user_id) DO UPDATE
		SET sleeper_username=EXCLUDED.sleeper_username,
			verification_code=EXCLUDED.verification_code,
			verification_expires_at=EXCLUDED.verification_expires_at,
			is_verified=FALSE,
			session_token=NULL,
			session_expires_at=NULL,
			updated_at=EXCLUDED.updated_at`

	args := pgx.NamedArgs{
		"id":       v.SleeperUserID,
		"username": nullString(v.SleeperUsername),
		"code":     v.Code,
		"expires":  timestamptz(v.ExpiresAt),
		"updated":  timestamptz(db.clock.Now().UTC()),
	}
	if _, err := db.pool.Exec(ctx, upsert, args); err != nil {
		return fmt.Errorf("error upserting pending verification for %s: %w", v.SleeperUserID, err)
	}
	return nil
}

func (db *postgresDB) SaveVerifiedSession(ctx context.Context, s *model.Session) error {
	if s == nil {
		return errors.New("SaveVerifiedSession - session is nil")
	}

	const update = `UPDATE manager_profiles
		SET is_verified=TRUE,
			session_token=@token,
			session_expires_at=@expires,
			verification_code=NULL,
			verification_expires_at=NULL,
			last_verified_at=@verified,
			updated_at=@updated
		WHERE sleeper_user_id=@id`

	args := pgx.NamedArgs{
		"id":       s.SleeperUserID,
		"token":    s.Token,
		"expires":  timestamptz(s.ExpiresAt),
		"verified": timestamptz(s.IssuedAt),
		"updated":  timestamptz(db.clock.Now().UTC()),
	}
	tag, err := db.pool.Exec(ctx, update, args)
	if err != nil {
		return fmt.Errorf("error saving session for %s: %w", s.SleeperUserID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (db *postgresDB) UpdateProfileFields(ctx context.Context, sleeperUserID string, u model.ProfileUpdate) (*model.ManagerProfile, error) {
	args := pgx.NamedArgs{
		"id":      sleeperUserID,
		"updated": timestamptz(db.clock.Now().UTC()),
	}

	// Column names come from the model.EditableProfileFields allow-list,
	// never from the request.
	sets := make([]string, 0, u.Len()+1)
	for _, f := range u.Fields() {
		v, _ := u.Value(f)
		col := string(f)
		sets = append(sets, fmt.Sprintf("%s=@%s", col, col))
		args[col] = fieldArg(v)
	}
	sets = append(sets, "updated_at=@updated")

	query := fmt.Sprintf(`UPDATE manager_profiles SET %s WHERE sleeper_user_id=@id RETURNING %s`,
		strings.Join(sets, ", "), profileColumns)

	p, err := scanProfile(db.pool.QueryRow(ctx, query, args))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("error updating manager profile %s: %w", sleeperUserID, err)
	}
	return p, nil
}

func (db *postgresDB) ListVerifiedProfiles(ctx context.Context) ([]model.ManagerProfile, error) {
	const query = `SELECT ` + profileColumns + ` FROM manager_profiles
		WHERE is_verified=TRUE ORDER BY created_at, sleeper_user_id`

	rows, err := db.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying verified profiles: %w", err)
	}
	defer rows.Close()

	results := make([]model.ManagerProfile, 0, 16)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning manager profile: %w", err)
		}
		results = append(results, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error with rows: %w", err)
	}

	return results, nil
}

func scanProfile(row pgx.Row) (*model.ManagerProfile, error) {
	var result model.ManagerProfile
	var username, name, location, bio, photoURL, favoriteTeam, mode sql.NullString
	var rivalName, rivalManagerID, favoritePlayerID, valuePosition, rookieOrVets sql.NullString
	var philosophy, preferredContact, verificationCode, sessionToken sql.NullString
	var fantasyStartYear, tradingScale pgtype.Int4
	var verificationExpires, sessionExpires, lastVerified, created, updated pgtype.Timestamptz
	err := row.Scan(
		&result.SleeperUserID,
		&username,
		&name,
		&location,
		&bio,
		&photoURL,
		&fantasyStartYear,
		&favoriteTeam,
		&mode,
		&rivalName,
		&rivalManagerID,
		&favoritePlayerID,
		&valuePosition,
		&rookieOrVets,
		&philosophy,
		&tradingScale,
		&preferredContact,
		&result.IsVerified,
		&verificationCode,
		&verificationExpires,
		&sessionToken,
		&sessionExpires,
		&lastVerified,
		&created,
		&updated)

	if err != nil {
		return nil, err
	}

	result.SleeperUsername = valueOrEmpty(username)
	result.Name = valueOrEmpty(name)
	result.Location = valueOrEmpty(location)
	result.Bio = valueOrEmpty(bio)
	result.PhotoURL = valueOrEmpty(photoURL)
	result.FantasyStartYear = int(fantasyStartYear.Int32)
	result.FavoriteTeam = valueOrEmpty(favoriteTeam)
	result.Mode = valueOrEmpty(mode)
	result.RivalName = valueOrEmpty(rivalName)
	result.RivalManagerID = valueOrEmpty(rivalManagerID)
	result.FavoritePlayerID = valueOrEmpty(favoritePlayerID)
	result.ValuePosition = valueOrEmpty(valuePosition)
	result.RookieOrVets = valueOrEmpty(rookieOrVets)
	result.Philosophy = valueOrEmpty(philosophy)
	result.TradingScale = int(tradingScale.Int32)
	result.PreferredContact = valueOrEmpty(preferredContact)
	result.VerificationCode = valueOrEmpty(verificationCode)
	result.VerificationExpiresAt = verificationExpires.Time
	result.SessionToken = valueOrEmpty(sessionToken)
	result.SessionExpiresAt = sessionExpires.Time
	result.LastVerifiedAt = lastVerified.Time
	result.Created = created.Time
	result.Updated = updated.Time

	return &result, nil
}

// fieldArg converts a sanitized profile value to a query argument. Empty
// values are stored as NULL.
func fieldArg(v any) any {
	switch val := v.(type) {
	case string:
		return nullString(val)
	case int:
		// SanitizeProfileUpdate only lets int32 values through.
		return pgtype.Int4{Int32: int32(val), Valid: val != 0}
	default:
		return nil
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{
		String: s,
		Valid:  s != "",
	}
}

func timestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{
		Time:             t,
		InfinityModifier: pgtype.Finite,
		Valid:            !t.IsZero(),
	}
}

func valueOrEmpty(v sql.NullString) string {
	if v.Valid {
		return v.String
	}
	return ""
}
