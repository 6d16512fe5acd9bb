package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/Jefersonlopezr/foodierank/internal/api"
	"github.com/Jefersonlopezr/foodierank/internal/listing"
	"github.com/Jefersonlopezr/foodierank/internal/session"
)

// terminalUI реализует навигацию, уведомления и отрисовку списков
// в терминале. Переходы между экранами в CLI сводятся к подсказкам
type terminalUI struct {
	out io.Writer
}

func newTerminalUI(out io.Writer) *terminalUI {
	return &terminalUI{out: out}
}

// NavigateTo реализует session.Navigator
func (u *terminalUI) NavigateTo(surface session.Surface) {
	switch surface {
	case session.SurfaceLogin:
		fmt.Fprintln(u.out, "-> run 'foodierank login' to sign in")
	case session.SurfaceHome:
		fmt.Fprintln(u.out, "-> run 'foodierank browse' to explore restaurants")
	}
}

// Notify реализует session.Notifier
func (u *terminalUI) Notify(level session.Level, message string) {
	switch level {
	case session.LevelError:
		fmt.Fprintf(u.out, "error: %s\n", message)
	case session.LevelWarning:
		fmt.Fprintf(u.out, "warning: %s\n", message)
	default:
		fmt.Fprintln(u.out, message)
	}
}

// RenderRestaurants реализует listing.View
func (u *terminalUI) RenderRestaurants(items []api.Restaurant, total int, controls listing.PageControls) {
	if len(items) == 0 {
		fmt.Fprintln(u.out, "No restaurants found")
		return
	}

	fmt.Fprintf(u.out, "%d restaurants total\n", total)
	for i, item := range items {
		u.printRestaurant(i+1, item)
	}

	// Пагинация скрывается при пустой выборке
	if controls.Visible {
		var hints []string
		if controls.PrevEnabled {
			hints = append(hints, "'prev'")
		}
		if controls.NextEnabled {
			hints = append(hints, "'next'")
		}
		line := fmt.Sprintf("page %d of %d", controls.Page, controls.TotalPages)
		if len(hints) > 0 {
			line += " (" + strings.Join(hints, ", ") + ")"
		}
		fmt.Fprintln(u.out, line)
	}
}

// RenderError реализует listing.View
func (u *terminalUI) RenderError(err error) {
	fmt.Fprintf(u.out, "error: %s\n", describeError(err))
}

func (u *terminalUI) printRestaurant(index int, item api.Restaurant) {
	status := ""
	if !item.IsApproved {
		status = " [pending approval]"
	}
	fmt.Fprintf(u.out, "%2d. %s%s\n", index, item.Name, status)
	fmt.Fprintf(u.out, "    rating %.1f (%d reviews)", item.AverageRating, item.TotalReviews)
	if item.CategoryName != "" {
		fmt.Fprintf(u.out, " | %s", item.CategoryName)
	}
	if item.Location.City != "" {
		fmt.Fprintf(u.out, " | %s", item.Location.City)
	}
	fmt.Fprintf(u.out, "\n    id: %s\n", item.ID)
}

func (u *terminalUI) printUser(user api.User) {
	fmt.Fprintf(u.out, "%s <%s> role=%s id=%s\n", user.Username, user.Email, user.Role, user.ID)
}

func (u *terminalUI) printReview(review api.Review) {
	fmt.Fprintf(u.out, "%s rated %d/5: %s (+%d/-%d)\n",
		review.Username, review.Rating, review.Comment, review.Likes, review.Dislikes)
	fmt.Fprintf(u.out, "    id: %s\n", review.ID)
}

func (u *terminalUI) printDish(dish api.Dish) {
	fmt.Fprintf(u.out, "%s - %.2f", dish.Name, dish.Price)
	if dish.Description != "" {
		fmt.Fprintf(u.out, " (%s)", dish.Description)
	}
	fmt.Fprintf(u.out, "\n    id: %s\n", dish.ID)
}
