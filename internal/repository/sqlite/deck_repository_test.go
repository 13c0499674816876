package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/codeflash/internal/models"
	"github.com/vytor/codeflash/internal/repository"
	"github.com/vytor/codeflash/internal/repository/sqlite"
	"github.com/vytor/codeflash/internal/testutil"
)

type DeckRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.DeckRepository
	now  time.Time
}

func (s *DeckRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewDeckRepository(s.db)
	s.now = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
}

func (s *DeckRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *DeckRepositorySuite) TestInsertGetUpdate() {
	ctx := context.Background()

	id, err := s.repo.Insert(ctx, models.Deck{
		Name:      "Go Concurrency",
		Color:     models.DefaultDeckColor,
		CreatedAt: s.now,
		UpdatedAt: s.now,
	})
	s.Require().NoError(err)

	deck, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Require().NotNil(deck)
	s.Assert().Equal("Go Concurrency", deck.Name)
	s.Assert().Equal(models.DefaultDeckColor, deck.Color)
	s.Assert().Empty(deck.Description)

	deck.Description = "channels, select, sync"
	deck.Icon = "gopher"
	deck.UpdatedAt = s.now.Add(time.Hour)
	s.Require().NoError(s.repo.Update(ctx, *deck))

	stored, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Assert().Equal("channels, select, sync", stored.Description)
	s.Assert().Equal("gopher", stored.Icon)
	s.Assert().True(s.now.Add(time.Hour).Equal(stored.UpdatedAt))
}

func (s *DeckRepositorySuite) TestGetMissing() {
	deck, err := s.repo.Get(context.Background(), 99)
	s.Require().NoError(err)
	s.Assert().Nil(deck)
}

func (s *DeckRepositorySuite) TestListNewestFirst() {
	ctx := context.Background()
	for i, name := range []string{"first", "second", "third"} {
		created := s.now.Add(time.Duration(i) * time.Minute)
		_, err := s.repo.Insert(ctx, models.Deck{Name: name, Color: models.DefaultDeckColor, CreatedAt: created, UpdatedAt: created})
		s.Require().NoError(err)
	}

	decks, err := s.repo.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(decks, 3)
	s.Assert().Equal("third", decks[0].Name)
	s.Assert().Equal("first", decks[2].Name)
}

func (s *DeckRepositorySuite) TestStats() {
	ctx := context.Background()
	deckID := testutil.InsertDeck(s.T(), s.db, "Go")
	emptyDeck := testutil.InsertDeck(s.T(), s.db, "Empty")

	testutil.InsertCard(s.T(), s.db, deckID, "due", s.now.Add(-time.Hour))
	testutil.InsertCard(s.T(), s.db, deckID, "due now", s.now)
	testutil.InsertCard(s.T(), s.db, deckID, "tomorrow", s.now.AddDate(0, 0, 1))

	stats, err := s.repo.Stats(ctx, deckID, s.now)
	s.Require().NoError(err)
	s.Assert().Equal(models.DeckStats{DeckID: deckID, TotalCards: 3, CardsDue: 2}, *stats)

	empty, err := s.repo.Stats(ctx, emptyDeck, s.now)
	s.Require().NoError(err)
	s.Assert().Equal(0, empty.TotalCards)
	s.Assert().Equal(0, empty.CardsDue)

	all, err := s.repo.AllStats(ctx, s.now)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Assert().Equal(deckID, all[0].DeckID)
	s.Assert().Equal(2, all[0].CardsDue)
	s.Assert().Equal(emptyDeck, all[1].DeckID)
	s.Assert().Equal(0, all[1].TotalCards)
}

func (s *DeckRepositorySuite) TestDeleteCascadesToCards() {
	ctx := context.Background()
	deckID := testutil.InsertDeck(s.T(), s.db, "Go")
	cardID := testutil.InsertCard(s.T(), s.db, deckID, "q", s.now)

	ok, err := s.repo.Delete(ctx, deckID)
	s.Require().NoError(err)
	s.Assert().True(ok)

	card, err := sqlite.NewCardRepository(s.db).Get(ctx, cardID)
	s.Require().NoError(err)
	s.Assert().Nil(card)

	ok, err = s.repo.Delete(ctx, deckID)
	s.Require().NoError(err)
	s.Assert().False(ok)
}

func TestDeckRepositorySuite(t *testing.T) {
	suite.Run(t, new(DeckRepositorySuite))
}
