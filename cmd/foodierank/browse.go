package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Jefersonlopezr/foodierank/internal/listing"
)

// cmdBrowse запускает интерактивный просмотр каталога ресторанов.
// Машина состояний списка владеет фильтрами и пагинацией; REPL только
// транслирует команды пользователя
func (a *app) cmdBrowse(ctx context.Context) error {
	query := listing.New(a.client, a.ui, a.cfg.Pagination.DefaultLimit, a.cfg.UI.SearchDebounce(), a.log)

	query.Refetch(ctx)
	fmt.Fprintln(a.ui.out, "Type 'help' for commands, 'quit' to exit")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(a.ui.out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		command, arg := splitCommand(line)
		switch command {
		case "quit", "exit":
			return nil
		case "help":
			printBrowseHelp(a)
		case "search":
			// Ввод применяется с задержкой, результат придет чуть позже
			query.Search(ctx, arg)
		case "category":
			query.SetFilter(ctx, listing.FieldCategory, arg)
		case "city":
			query.SetFilter(ctx, listing.FieldCity, arg)
		case "sort":
			query.SetFilter(ctx, listing.FieldSort, arg)
		case "clear":
			query.ClearFilters(ctx)
		case "next":
			query.NextPage(ctx)
		case "prev":
			query.PrevPage(ctx)
		case "page":
			n, err := strconv.Atoi(arg)
			if err != nil {
				fmt.Fprintln(a.ui.out, "usage: page <number>")
				continue
			}
			query.GoToPage(ctx, n)
		case "refresh":
			query.Refetch(ctx)
		case "filters":
			printFilters(a, query)
		default:
			fmt.Fprintf(a.ui.out, "unknown command %q, type 'help'\n", command)
		}
	}
}

func splitCommand(line string) (string, string) {
	parts := strings.SplitN(line, " ", 2)
	command := strings.ToLower(parts[0])
	arg := ""
	if len(parts) > 1 {
		arg = strings.TrimSpace(parts[1])
	}
	return command, arg
}

func printFilters(a *app, query *listing.Query) {
	filters := query.Filters()
	fmt.Fprintf(a.ui.out, "search=%q category=%q city=%q sort=%q page=%d/%d\n",
		filters.Search, filters.Category, filters.City, filters.Sort,
		query.Page(), query.TotalPages())
}

func printBrowseHelp(a *app) {
	fmt.Fprint(a.ui.out, `Commands:
  search <text>    filter by name or description
  category <id>    filter by category
  city <name>      filter by city
  sort <key>       rating, name or reviews
  clear            reset all filters
  next, prev       page navigation
  page <n>         jump to page n
  refresh          reload the current page
  filters          show active filters
  quit             leave the browser
`)
}
