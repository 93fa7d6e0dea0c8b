package ticketing

import (
	"concert-purchase/common/errs"
	"concert-purchase/outbound/sqlgen"
	"context"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"regexp"
	"testing"
	"time"
)

func TestGenerateTicketNumber(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z0-9]{12}$`)

	for i := 0; i < 100; i++ {
		assert.Regexp(t, pattern, GenerateTicketNumber(12))
	}
	assert.Len(t, GenerateTicketNumber(50), 50)
}

func TestNumberSeederSkipsDuplicates(t *testing.T) {
	pool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer pool.Close()

	codes := []string{"AAA111", "AAA111", "BBB222"}
	seeder := NewNumberSeeder(sqlgen.New(pool), 6)
	seeder.Generate = func(int) string {
		code := codes[0]
		codes = codes[1:]
		return code
	}

	pool.ExpectQuery("SELECT (.+) FROM concerts WHERE id = \\$1").
		WithArgs(int32(42)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "title", "artist", "is_visible", "price", "ticket_provider", "ticket_provider_concert_id", "created_at"}).
			AddRow(int32(42), "Night Shift", "The Band", true, 50.0, "sql", "", pgtype.Timestamp{Time: time.Now(), Valid: true}))
	pool.ExpectExec("INSERT INTO ticket_numbers").WithArgs("AAA111", int32(42)).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	pool.ExpectExec("INSERT INTO ticket_numbers").WithArgs("AAA111", int32(42)).WillReturnResult(pgxmock.NewResult("INSERT", 0))
	pool.ExpectExec("INSERT INTO ticket_numbers").WithArgs("BBB222", int32(42)).WillReturnResult(pgxmock.NewResult("INSERT", 1))

	inserted, err := seeder.Seed(context.Background(), 42, 2)

	assert.NoError(t, err)
	assert.Equal(t, 2, inserted)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestNumberSeederUnknownConcert(t *testing.T) {
	pool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer pool.Close()

	pool.ExpectQuery("SELECT (.+) FROM concerts WHERE id = \\$1").
		WithArgs(int32(9)).
		WillReturnError(pgx.ErrNoRows)

	_, err = NewNumberSeeder(sqlgen.New(pool), 0).Seed(context.Background(), 9, 10)

	assert.ErrorIs(t, err, errs.ErrConcertNotFound)
}
