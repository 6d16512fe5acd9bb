package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/Jefersonlopezr/foodierank/internal/api"
	"github.com/Jefersonlopezr/foodierank/internal/config"
	"github.com/Jefersonlopezr/foodierank/internal/logger"
	"github.com/Jefersonlopezr/foodierank/internal/session"
	"github.com/Jefersonlopezr/foodierank/pkg/health"
)

// app связывает все зависимости подкоманд
type app struct {
	cfg     *config.AppConfig
	log     logger.Logger
	client  *api.Client
	session *session.Manager
	store   session.Store
	ui      *terminalUI
}

// run диспетчеризует подкоманду
func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		return a.cmdRegister(ctx, args)
	case "login":
		return a.cmdLogin(ctx, args)
	case "logout":
		return a.cmdLogout(ctx)
	case "profile":
		return a.cmdProfile(ctx)
	case "update-profile":
		return a.cmdUpdateProfile(ctx, args)
	case "browse":
		return a.cmdBrowse(ctx)
	case "ranking":
		return a.cmdRanking(ctx, args)
	case "stats":
		return a.cmdStats(ctx)
	case "cities":
		return a.cmdCities(ctx)
	case "categories":
		return a.cmdCategories(ctx)
	case "add-category":
		return a.cmdAddCategory(ctx, args)
	case "my":
		return a.cmdMyRestaurants(ctx)
	case "add-restaurant":
		return a.cmdAddRestaurant(ctx, args)
	case "approve":
		return a.cmdApprove(ctx, args)
	case "dishes":
		return a.cmdDishes(ctx, args)
	case "reviews":
		return a.cmdReviews(ctx, args)
	case "add-review":
		return a.cmdAddReview(ctx, args)
	case "like":
		return a.cmdReaction(ctx, args, true)
	case "dislike":
		return a.cmdReaction(ctx, args, false)
	case "users":
		return a.cmdUsers(ctx)
	case "doctor":
		return a.cmdDoctor(ctx)
	case "help":
		a.printHelp()
		return nil
	default:
		a.printHelp()
		return fmt.Errorf("unknown command: %s", command)
	}
}

func (a *app) cmdRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	username := fs.String("username", "", "display name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	data, err := a.session.Register(ctx, api.RegisterData{
		Username: *username,
		Email:    *email,
		Password: *password,
	})
	if err != nil {
		return err
	}

	a.ui.Notify(session.LevelInfo, fmt.Sprintf("Welcome, %s!", data.User.Username))
	return nil
}

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	data, err := a.session.Login(ctx, api.Credentials{Email: *email, Password: *password})
	if err != nil {
		return err
	}

	a.ui.Notify(session.LevelInfo, fmt.Sprintf("Logged in as %s", data.User.Username))
	return nil
}

func (a *app) cmdLogout(ctx context.Context) error {
	// Серверный выход не обязателен для очистки локальной сессии
	if a.session.IsAuthenticated(ctx) {
		if err := a.client.Logout(ctx); err != nil {
			a.log.Warn("Server logout failed, clearing local session anyway", "error", err)
		}
	}
	a.session.Logout(ctx)
	a.ui.Notify(session.LevelInfo, "Logged out")
	return nil
}

func (a *app) cmdProfile(ctx context.Context) error {
	if !a.session.RequireAuthenticated(ctx) {
		return nil
	}

	user, err := a.session.RefreshProfile(ctx)
	if err != nil {
		return err
	}
	a.ui.printUser(*user)
	return nil
}

func (a *app) cmdUpdateProfile(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("update-profile", flag.ContinueOnError)
	username := fs.String("username", "", "new display name")
	email := fs.String("email", "", "new email address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if !a.session.RequireAuthenticated(ctx) {
		return nil
	}

	user, err := a.session.UpdateProfile(ctx, api.ProfileUpdate{Username: *username, Email: *email})
	if err != nil {
		return err
	}
	a.ui.printUser(*user)
	return nil
}

func (a *app) cmdRanking(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("ranking", flag.ContinueOnError)
	limit := fs.Int("limit", a.cfg.Pagination.DefaultLimit, "number of restaurants")
	if err := fs.Parse(args); err != nil {
		return err
	}

	items, err := a.client.Ranking(ctx, *limit)
	if err != nil {
		return err
	}

	for i, item := range items {
		a.ui.printRestaurant(i+1, item)
	}
	return nil
}

func (a *app) cmdStats(ctx context.Context) error {
	stats, err := a.client.Stats(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.ui.out, "restaurants: %d\nreviews: %d\nusers: %d\naverage rating: %.2f\n",
		stats.TotalRestaurants, stats.TotalReviews, stats.TotalUsers, stats.AverageRating)
	return nil
}

func (a *app) cmdCities(ctx context.Context) error {
	cities, err := a.client.Cities(ctx)
	if err != nil {
		return err
	}
	for _, city := range cities {
		fmt.Fprintln(a.ui.out, city)
	}
	return nil
}

func (a *app) cmdCategories(ctx context.Context) error {
	categories, err := a.client.Categories(ctx)
	if err != nil {
		return err
	}
	for _, category := range categories {
		fmt.Fprintf(a.ui.out, "%s (id: %s)\n", category.Name, category.ID)
	}
	return nil
}

func (a *app) cmdAddCategory(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add-category", flag.ContinueOnError)
	name := fs.String("name", "", "category name")
	description := fs.String("description", "", "category description")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if !a.session.RequireAuthenticated(ctx) {
		return nil
	}

	category, err := a.client.CreateCategory(ctx, api.CategoryInput{Name: *name, Description: *description})
	if err != nil {
		return err
	}
	a.ui.Notify(session.LevelInfo, fmt.Sprintf("Category %q created", category.Name))
	return nil
}

func (a *app) cmdMyRestaurants(ctx context.Context) error {
	if !a.session.RequireAuthenticated(ctx) {
		return nil
	}

	items, err := a.client.MyRestaurants(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		a.ui.Notify(session.LevelInfo, "You have no restaurants yet")
		return nil
	}
	for i, item := range items {
		a.ui.printRestaurant(i+1, item)
	}
	return nil
}

func (a *app) cmdAddRestaurant(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add-restaurant", flag.ContinueOnError)
	name := fs.String("name", "", "restaurant name")
	description := fs.String("description", "", "restaurant description")
	category := fs.String("category", "", "category id")
	city := fs.String("city", "", "city")
	address := fs.String("address", "", "street address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if !a.session.RequireAuthenticated(ctx) {
		return nil
	}

	restaurant, err := a.client.CreateRestaurant(ctx, api.RestaurantInput{
		Name:        *name,
		Description: *description,
		CategoryID:  *category,
		Location:    api.Location{City: *city, Address: *address},
	})
	if err != nil {
		return err
	}

	a.ui.Notify(session.LevelInfo,
		fmt.Sprintf("Restaurant %q created, awaiting approval (id: %s)", restaurant.Name, restaurant.ID))
	return nil
}

func (a *app) cmdApprove(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: foodierank approve <restaurant-id>")
	}

	if !a.session.RequireAdmin(ctx) {
		return nil
	}

	restaurant, err := a.client.ApproveRestaurant(ctx, args[0])
	if err != nil {
		return err
	}
	a.ui.Notify(session.LevelInfo, fmt.Sprintf("Restaurant %q approved", restaurant.Name))
	return nil
}

func (a *app) cmdDishes(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: foodierank dishes <restaurant-id>")
	}

	dishes, err := a.client.Dishes(ctx, args[0])
	if err != nil {
		return err
	}
	if len(dishes) == 0 {
		a.ui.Notify(session.LevelInfo, "No dishes yet")
		return nil
	}
	for _, dish := range dishes {
		a.ui.printDish(dish)
	}
	return nil
}

func (a *app) cmdReviews(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: foodierank reviews <restaurant-id>")
	}

	reviews, err := a.client.Reviews(ctx, args[0])
	if err != nil {
		return err
	}
	if len(reviews) == 0 {
		a.ui.Notify(session.LevelInfo, "No reviews yet")
		return nil
	}
	for _, review := range reviews {
		a.ui.printReview(review)
	}
	return nil
}

func (a *app) cmdAddReview(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add-review", flag.ContinueOnError)
	restaurant := fs.String("restaurant", "", "restaurant id")
	rating := fs.Int("rating", 0, "rating from 1 to 5")
	comment := fs.String("comment", "", "review text")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if !a.session.RequireAuthenticated(ctx) {
		return nil
	}

	review, err := a.client.CreateReview(ctx, *restaurant, api.ReviewInput{Rating: *rating, Comment: *comment})
	if err != nil {
		return err
	}
	a.ui.Notify(session.LevelInfo, fmt.Sprintf("Review posted (id: %s)", review.ID))
	return nil
}

func (a *app) cmdReaction(ctx context.Context, args []string, like bool) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: foodierank like|dislike <review-id>")
	}

	if !a.session.RequireAuthenticated(ctx) {
		return nil
	}

	var err error
	if like {
		err = a.client.ToggleLike(ctx, args[0])
	} else {
		err = a.client.ToggleDislike(ctx, args[0])
	}
	if err != nil {
		return err
	}

	a.ui.Notify(session.LevelInfo, "Reaction updated")
	return nil
}

func (a *app) cmdUsers(ctx context.Context) error {
	if !a.session.RequireAdmin(ctx) {
		return nil
	}

	users, err := a.client.Users(ctx)
	if err != nil {
		return err
	}
	for _, user := range users {
		a.ui.printUser(user)
	}
	return nil
}

// cmdDoctor прогоняет проверки здоровья зависимостей клиента
func (a *app) cmdDoctor(ctx context.Context) error {
	checkers := map[string]health.Checker{
		"api": health.APIChecker(a.cfg.ResolveBaseURL()),
	}
	if redisStore, ok := a.store.(*session.RedisStore); ok {
		checkers["redis"] = health.RedisChecker(redisStore.Client())
	}

	overall, results := health.Report(ctx, checkers)
	for name, result := range results {
		line := fmt.Sprintf("%s: %s", name, result.Status)
		if result.Error != "" {
			line += " (" + result.Error + ")"
		}
		fmt.Fprintln(a.ui.out, line)
	}

	if overall == health.StatusDown {
		return fmt.Errorf("some checks failed")
	}
	return nil
}

func (a *app) printHelp() {
	fmt.Fprint(a.ui.out, `foodierank - restaurant ranking client

Usage: foodierank <command> [flags]

Commands:
  register        create an account (-username -email -password)
  login           sign in (-email -password)
  logout          sign out and clear the stored session
  profile         show your profile
  update-profile  change username or email (-username -email)
  browse          interactive restaurant browser
  ranking         top rated restaurants (-limit)
  stats           service statistics
  cities          cities with restaurants
  categories      cuisine categories
  add-category    create a category (-name -description)
  my              your restaurants
  add-restaurant  submit a restaurant (-name -description -category -city -address)
  approve         approve a restaurant, admin only
  dishes          restaurant menu
  reviews         restaurant reviews
  add-review      post a review (-restaurant -rating -comment)
  like, dislike   react to a review
  users           list users, admin only
  doctor          check connectivity
`)
}
