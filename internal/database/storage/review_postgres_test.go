package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/GoArmGo/MovieCatalog/internal/apperrors"
	"github.com/GoArmGo/MovieCatalog/internal/database/storage"
	"github.com/GoArmGo/MovieCatalog/internal/domain"
	"github.com/GoArmGo/MovieCatalog/internal/logger"
	"github.com/GoArmGo/MovieCatalog/internal/testutil"
)

type ReviewStorageTestSuite struct {
	suite.Suite

	db        *gorm.DB
	reviews   *storage.ReviewStorage
	votes     *storage.VoteStorage
	favorites *storage.FavoriteStorage
	ratings   *storage.RatingStorage
	ctx       context.Context
}

func (suite *ReviewStorageTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.db = testutil.NewTestDB(suite.T())
	log := logger.Discard()
	suite.reviews = storage.NewReviewStorage(suite.db, log)
	suite.votes = storage.NewVoteStorage(suite.db, log)
	suite.favorites = storage.NewFavoriteStorage(suite.db, log)
	suite.ratings = storage.NewRatingStorage(testutil.SQLX(suite.T(), suite.db), log)
}

func (suite *ReviewStorageTestSuite) addReview(kind domain.Kind, userID, itemID int, rating float64) *domain.Review {
	r := &domain.Review{UserID: userID, ItemID: itemID, Rating: rating, Content: "ok"}
	suite.Require().NoError(suite.reviews.Create(suite.ctx, kind, r))
	return r
}

func (suite *ReviewStorageTestSuite) TestCreate_OnePerUserAndItem() {
	suite.addReview(domain.KindMovie, 1, 10, 4)

	err := suite.reviews.Create(suite.ctx, domain.KindMovie, &domain.Review{UserID: 1, ItemID: 10, Rating: 2})
	suite.True(apperrors.IsConflict(err))

	// the same user may review an episode with the same id
	suite.addReview(domain.KindEpisode, 1, 10, 3)
}

func (suite *ReviewStorageTestSuite) TestListByItemNewestFirst() {
	first := suite.addReview(domain.KindMovie, 1, 10, 4)
	second := suite.addReview(domain.KindMovie, 2, 10, 5)
	suite.addReview(domain.KindMovie, 3, 11, 5)

	list, total, err := suite.reviews.ListByItem(suite.ctx, domain.KindMovie, 10, 0, 10)
	suite.Require().NoError(err)
	suite.EqualValues(2, total)
	suite.Require().Len(list, 2)
	suite.Equal(second.ID, list[0].ID)
	suite.Equal(first.ID, list[1].ID)

	byUser, total, err := suite.reviews.ListByUser(suite.ctx, domain.KindMovie, 3, 0, 10)
	suite.Require().NoError(err)
	suite.EqualValues(1, total)
	suite.Equal(11, byUser[0].ItemID)
}

func (suite *ReviewStorageTestSuite) TestUpdate() {
	r := suite.addReview(domain.KindSerie, 1, 10, 1)
	now := time.Now()
	r.Content = "better on rewatch"
	r.Rating = 4.5
	r.UpdatedAt = &now
	suite.Require().NoError(suite.reviews.Update(suite.ctx, domain.KindSerie, r))

	got, err := suite.reviews.FindByUserAndItem(suite.ctx, domain.KindSerie, 1, 10)
	suite.Require().NoError(err)
	suite.Require().NotNil(got)
	suite.Equal("better on rewatch", got.Content)
	suite.Equal(4.5, got.Rating)
	suite.NotNil(got.UpdatedAt)
}

func (suite *ReviewStorageTestSuite) TestDelete_RemovesVotes() {
	r := suite.addReview(domain.KindMovie, 1, 10, 4)
	suite.Require().NoError(suite.votes.Add(suite.ctx, domain.KindMovie, true, &domain.Vote{UserID: 2, ItemID: 10, ReviewID: r.ID}))
	suite.Require().NoError(suite.votes.Add(suite.ctx, domain.KindMovie, false, &domain.Vote{UserID: 3, ItemID: 10, ReviewID: r.ID}))

	suite.Require().NoError(suite.reviews.Delete(suite.ctx, domain.KindMovie, r))

	got, err := suite.reviews.Get(suite.ctx, domain.KindMovie, r.ID)
	suite.Require().NoError(err)
	suite.Nil(got)

	voters, err := suite.votes.Voters(suite.ctx, domain.KindMovie, []int{r.ID})
	suite.Require().NoError(err)
	suite.Empty(voters)
}

func (suite *ReviewStorageTestSuite) TestVotes() {
	r := suite.addReview(domain.KindMovie, 1, 10, 4)
	vote := func(up bool, userID int) error {
		return suite.votes.Add(suite.ctx, domain.KindMovie, up, &domain.Vote{UserID: userID, ItemID: 10, ReviewID: r.ID})
	}

	suite.Require().NoError(vote(true, 2))
	suite.Require().NoError(vote(true, 3))
	suite.Require().NoError(vote(false, 2))
	suite.True(apperrors.IsConflict(vote(true, 2)))

	ok, err := suite.votes.Exists(suite.ctx, domain.KindMovie, true, 2, r.ID)
	suite.Require().NoError(err)
	suite.True(ok)

	voters, err := suite.votes.Voters(suite.ctx, domain.KindMovie, []int{r.ID})
	suite.Require().NoError(err)
	suite.Equal([]int{2, 3}, voters[r.ID].Upvoters)
	suite.Equal([]int{2}, voters[r.ID].Downvoters)

	suite.Require().NoError(suite.votes.Remove(suite.ctx, domain.KindMovie, true, 2, r.ID))
	err = suite.votes.Remove(suite.ctx, domain.KindMovie, true, 2, r.ID)
	suite.True(apperrors.IsNotFound(err))
}

func (suite *ReviewStorageTestSuite) TestFavorites() {
	for _, itemID := range []int{10, 11, 12} {
		suite.Require().NoError(suite.favorites.Add(suite.ctx, domain.KindActor, &domain.Favorite{UserID: 1, ItemID: itemID}))
	}
	err := suite.favorites.Add(suite.ctx, domain.KindActor, &domain.Favorite{UserID: 1, ItemID: 10})
	suite.True(apperrors.IsConflict(err))

	ids, total, err := suite.favorites.ItemIDs(suite.ctx, domain.KindActor, 1, 0, 2)
	suite.Require().NoError(err)
	suite.EqualValues(3, total)
	suite.Len(ids, 2)

	marks, err := suite.favorites.Bookmarked(suite.ctx, domain.KindActor, 1, []int{10, 13})
	suite.Require().NoError(err)
	suite.True(marks[10])
	suite.False(marks[13])

	suite.Require().NoError(suite.favorites.Remove(suite.ctx, domain.KindActor, 1, 10))
	suite.True(apperrors.IsNotFound(suite.favorites.Remove(suite.ctx, domain.KindActor, 1, 10)))
}

func (suite *ReviewStorageTestSuite) TestReviewedItems() {
	suite.addReview(domain.KindMovie, 1, 10, 4)

	marks, err := suite.reviews.ReviewedItems(suite.ctx, domain.KindMovie, 1, []int{10, 11})
	suite.Require().NoError(err)
	suite.Equal(map[int]bool{10: true}, marks)
}

func (suite *ReviewStorageTestSuite) TestRatingSummaries() {
	suite.addReview(domain.KindMovie, 1, 10, 4)
	suite.addReview(domain.KindMovie, 2, 10, 5)

	sums, err := suite.ratings.Summaries(suite.ctx, domain.KindMovie, []int{10, 11})
	suite.Require().NoError(err)
	suite.Equal(domain.RatingSummary{AverageRating: 4.5, TotalReviews: 2}, sums[10])
	suite.Equal(domain.RatingSummary{}, sums[11])
}

func TestReviewStorageTestSuite(t *testing.T) {
	suite.Run(t, new(ReviewStorageTestSuite))
}
