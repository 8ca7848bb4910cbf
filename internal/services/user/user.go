// Package user отдаёт профили пользователей и список подписок.
package user

import (
	"context"

	"github.com/magabrotheeeer/foodgram/internal/models"
)

// Repository описывает чтение пользователей и их рецептов.
type Repository interface {
	GetUser(ctx context.Context, id int64) (*models.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]models.User, int, error)
	ListSubscriptions(ctx context.Context, userID int64, limit, offset int) ([]models.User, int, error)
	RecipesCountByAuthors(ctx context.Context, authorIDs []int64) (map[int64]int, error)
	RecipesByAuthors(ctx context.Context, authorIDs []int64, perAuthor int) (map[int64][]models.RecipeShort, error)
}

// AuthorMarks отвечает, на каких авторов подписан пользователь.
type AuthorMarks interface {
	Targets(ctx context.Context, subject models.UserID, targets []models.UserID) (map[models.UserID]bool, error)
}

// Service реализует чтение профилей.
type Service struct {
	repo          Repository
	subscriptions AuthorMarks
}

// New создаёт сервис пользователей.
func New(repo Repository, subscriptions AuthorMarks) *Service {
	return &Service{repo: repo, subscriptions: subscriptions}
}

// Profile возвращает профиль пользователя id глазами viewer (nil для анонима).
func (s *Service) Profile(ctx context.Context, id int64, viewer *int64) (*models.UserProfile, error) {
	u, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	subscribed, err := s.subscribed(ctx, viewer, []models.User{*u})
	if err != nil {
		return nil, err
	}
	profile := u.Profile(subscribed[models.UserID(u.ID)])
	return &profile, nil
}

// List возвращает страницу пользователей.
func (s *Service) List(ctx context.Context, page models.Page, viewer *int64) (models.PageOf[models.UserProfile], error) {
	users, total, err := s.repo.ListUsers(ctx, page.Size, page.Offset())
	if err != nil {
		return models.PageOf[models.UserProfile]{}, err
	}
	subscribed, err := s.subscribed(ctx, viewer, users)
	if err != nil {
		return models.PageOf[models.UserProfile]{}, err
	}

	results := make([]models.UserProfile, 0, len(users))
	for _, u := range users {
		results = append(results, u.Profile(subscribed[models.UserID(u.ID)]))
	}
	return models.PageOf[models.UserProfile]{Count: total, Results: results}, nil
}

// Subscriptions возвращает страницу авторов, на которых подписан пользователь,
// с их рецептами. models.UnlimitedRecipes снимает ограничение на число рецептов.
func (s *Service) Subscriptions(ctx context.Context, userID int64, page models.Page, recipesLimit int) (models.PageOf[models.AuthorSubscription], error) {
	authors, total, err := s.repo.ListSubscriptions(ctx, userID, page.Size, page.Offset())
	if err != nil {
		return models.PageOf[models.AuthorSubscription]{}, err
	}
	results, err := s.withRecipes(ctx, authors, recipesLimit)
	if err != nil {
		return models.PageOf[models.AuthorSubscription]{}, err
	}
	return models.PageOf[models.AuthorSubscription]{Count: total, Results: results}, nil
}

// Subscription возвращает автора так, как его видит подписчик сразу после подписки.
func (s *Service) Subscription(ctx context.Context, viewerID, authorID int64, recipesLimit int) (*models.AuthorSubscription, error) {
	author, err := s.repo.GetUser(ctx, authorID)
	if err != nil {
		return nil, err
	}
	subscribed, err := s.subscribed(ctx, &viewerID, []models.User{*author})
	if err != nil {
		return nil, err
	}
	results, err := s.withRecipes(ctx, []models.User{*author}, recipesLimit)
	if err != nil {
		return nil, err
	}
	result := results[0]
	result.IsSubscribed = subscribed[models.UserID(authorID)]
	return &result, nil
}

// withRecipes дополняет авторов рецептами и их количеством. Все авторы
// в списке подписок по определению отмечены как подписанные.
func (s *Service) withRecipes(ctx context.Context, authors []models.User, recipesLimit int) ([]models.AuthorSubscription, error) {
	ids := make([]int64, 0, len(authors))
	for _, a := range authors {
		ids = append(ids, a.ID)
	}
	counts, err := s.repo.RecipesCountByAuthors(ctx, ids)
	if err != nil {
		return nil, err
	}
	recipes, err := s.repo.RecipesByAuthors(ctx, ids, recipesLimit)
	if err != nil {
		return nil, err
	}

	result := make([]models.AuthorSubscription, 0, len(authors))
	for _, a := range authors {
		short := recipes[a.ID]
		if short == nil {
			short = []models.RecipeShort{}
		}
		result = append(result, models.AuthorSubscription{
			UserProfile:  a.Profile(true),
			Recipes:      short,
			RecipesCount: counts[a.ID],
		})
	}
	return result, nil
}

func (s *Service) subscribed(ctx context.Context, viewer *int64, users []models.User) (map[models.UserID]bool, error) {
	if viewer == nil || len(users) == 0 {
		return nil, nil
	}
	ids := make([]models.UserID, 0, len(users))
	for _, u := range users {
		ids = append(ids, models.UserID(u.ID))
	}
	return s.subscriptions.Targets(ctx, models.UserID(*viewer), ids)
}
