package ticketing

import (
	"concert-purchase/common/errs"
	"concert-purchase/outbound/sqlgen"
	"context"
	"errors"
	"fmt"
	"github.com/jackc/pgx/v5"
	"math/rand/v2"
	"strings"
)

const DefaultTicketNumberLength = 12

// GenerateTicketNumber returns a random code mixing upper case letters and
// digits.
func GenerateTicketNumber(length int) string {
	var sb strings.Builder
	sb.Grow(length)

	for i := 0; i < length; i++ {
		if rand.IntN(2) > 0 {
			sb.WriteByte(byte('A' + rand.IntN(26)))
		} else {
			sb.WriteByte(byte('0' + rand.IntN(10)))
		}
	}

	return sb.String()
}

// NumberSeeder pre-allocates ticket numbers for a concert. Duplicate codes
// are skipped by the (number, concert_id) constraint and regenerated.
type NumberSeeder struct {
	Querier  *sqlgen.Queries
	Length   int
	Generate func(length int) string
}

func NewNumberSeeder(querier *sqlgen.Queries, length int) *NumberSeeder {
	if length <= 0 {
		length = DefaultTicketNumberLength
	}

	return &NumberSeeder{Querier: querier, Length: length, Generate: GenerateTicketNumber}
}

func (s *NumberSeeder) Seed(ctx context.Context, concertId int32, count int) (int, error) {
	_, err := s.Querier.GetConcertByID(ctx, concertId)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("%w: %d", errs.ErrConcertNotFound, concertId)
	}
	if err != nil {
		return 0, fmt.Errorf("get concert %d: %w", concertId, err)
	}

	inserted := 0
	maxAttempts := count * 10
	for attempt := 0; inserted < count && attempt < maxAttempts; attempt++ {
		affected, err := s.Querier.InsertTicketNumber(ctx, sqlgen.InsertTicketNumberParams{
			Number:    s.Generate(s.Length),
			ConcertID: concertId,
		})
		if err != nil {
			return inserted, fmt.Errorf("insert ticket number: %w", err)
		}
		inserted += int(affected)
	}

	if inserted < count {
		return inserted, fmt.Errorf("generated %d of %d unique ticket numbers", inserted, count)
	}

	return inserted, nil
}
