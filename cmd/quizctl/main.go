// quizctl drives the quiz service from the terminal: generate a quiz from
// an article URL, browse the history, review a past quiz, or play one
// interactively.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/wikiquiz/quizforge/internal/catalog"
	"github.com/wikiquiz/quizforge/internal/client"
	"github.com/wikiquiz/quizforge/internal/config"
	"github.com/wikiquiz/quizforge/internal/domain"
	"github.com/wikiquiz/quizforge/internal/logger"
	"github.com/wikiquiz/quizforge/internal/session"
)

const usage = `Usage: quizctl <command> [args]

Commands:
  health                     probe the quiz service
  generate <article-url>     generate a quiz from a Wikipedia article
  history [-search s] [-sort newest|oldest|title]
                             list previously generated quizzes
  show <id>                  review a past quiz with answers revealed
  play <id>                  take a quiz interactively
`

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	defer logger.Sync()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	api := client.New(cfg.Client.BaseURL, cfg.Client.Timeout)
	ctx := context.Background()

	var cmdErr error
	switch os.Args[1] {
	case "health":
		cmdErr = runHealth(ctx, api)
	case "generate":
		if len(os.Args) < 3 {
			cmdErr = fmt.Errorf("generate requires an article URL")
			break
		}
		cmdErr = runGenerate(ctx, api, os.Args[2])
	case "history":
		cmdErr = runHistory(ctx, api, os.Args[2:])
	case "show":
		if len(os.Args) < 3 {
			cmdErr = fmt.Errorf("show requires a quiz id")
			break
		}
		cmdErr = runShow(ctx, api, os.Args[2])
	case "play":
		if len(os.Args) < 3 {
			cmdErr = fmt.Errorf("play requires a quiz id")
			break
		}
		cmdErr = runPlay(ctx, api, os.Args[2])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if cmdErr != nil {
		fmt.Fprintf(os.Stderr, "quizctl: %v\n", cmdErr)
		os.Exit(1)
	}
}

func runHealth(ctx context.Context, api *client.Client) error {
	status, err := api.CheckHealth(ctx)
	if err != nil {
		return err
	}
	fmt.Println(status.Message)
	return nil
}

func runGenerate(ctx context.Context, api *client.Client, url string) error {
	fmt.Println("Generating quiz... this can take a while.")
	quiz, err := api.GenerateQuiz(ctx, url)
	if err != nil {
		return err
	}
	fmt.Printf("Generated %q (%d questions)\n", quiz.Title, len(quiz.Questions))
	fmt.Printf("Quiz id: %s\n", quiz.ID)
	return nil
}

func runHistory(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	search := fs.String("search", "", "filter by title or URL substring")
	sortKey := fs.String("sort", "newest", "newest, oldest, or title")
	if err := fs.Parse(args); err != nil {
		return err
	}

	summaries, err := api.ListQuizzes(ctx)
	if err != nil {
		return err
	}

	stats := catalog.ComputeStats(summaries, time.Now())
	fmt.Printf("%d quizzes total, %d this week, %d this month\n\n",
		stats.Total, stats.ThisWeek, stats.ThisMonth)

	view := catalog.Apply(summaries, catalog.Criteria{
		SearchTerm: *search,
		SortKey:    catalog.ParseSortKey(*sortKey),
	})
	if len(view) == 0 {
		fmt.Println("No quizzes match.")
		return nil
	}
	for _, s := range view {
		fmt.Printf("%s  %s  %s\n", s.ID, s.DateGenerated.Format("2006-01-02 15:04"), s.Title)
	}
	return nil
}

func runShow(ctx context.Context, api *client.Client, id string) error {
	quiz, err := api.GetQuiz(ctx, id)
	if err != nil {
		return err
	}

	sess := session.New(quiz.Questions, session.ModeReview)
	printQuizHeader(quiz)
	for i, q := range quiz.Questions {
		printQuestion(i, q, sess)
	}
	return nil
}

func runPlay(ctx context.Context, api *client.Client, id string) error {
	quiz, err := api.GetQuiz(ctx, id)
	if err != nil {
		return err
	}

	sess := session.New(quiz.Questions, session.ModePlay)
	printQuizHeader(quiz)
	reader := bufio.NewReader(os.Stdin)

	for i, q := range quiz.Questions {
		fmt.Printf("\n%d. %s [%s]\n", i+1, q.Text, q.Difficulty)
		for j, opt := range q.Options {
			fmt.Printf("   %s) %s\n", optionLabel(j), opt)
		}
		choice, ok := readChoice(reader, len(q.Options))
		if !ok {
			continue // skipped questions count as incorrect
		}
		if err := sess.RecordAnswer(i, q.Options[choice]); err != nil {
			return err
		}
	}

	sess.Submit()
	score := sess.Score()
	fmt.Printf("\nYou scored %d out of %d (%d%%)\n", score.Correct, score.Total, score.Percentage)

	for i, q := range quiz.Questions {
		printQuestion(i, q, sess)
	}
	return nil
}

func printQuizHeader(quiz *domain.Quiz) {
	fmt.Printf("%s\n%s\n", quiz.Title, quiz.URL)
	if quiz.Summary != "" {
		fmt.Printf("\n%s\n", quiz.Summary)
	}
	if len(quiz.RelatedTopics) > 0 {
		fmt.Printf("\nRelated topics: %s\n", strings.Join(quiz.RelatedTopics, ", "))
	}
}

// printQuestion renders one question with the session's option states:
// correct answers, the user's wrong pick, and everything else neutral.
func printQuestion(i int, q domain.Question, sess *session.Session) {
	fmt.Printf("\n%d. %s [%s]\n", i+1, q.Text, q.Difficulty)
	states := sess.OptionStates(i)
	for j, opt := range q.Options {
		marker := " "
		switch states[j] {
		case session.OptionCorrect:
			marker = "+"
		case session.OptionIncorrect:
			marker = "x"
		case session.OptionSelected:
			marker = ">"
		}
		fmt.Printf(" %s %s) %s\n", marker, optionLabel(j), opt)
	}
	if q.Explanation != "" {
		fmt.Printf("   %s\n", q.Explanation)
	}
}

func optionLabel(i int) string {
	if i < 26 {
		return string(rune('A' + i))
	}
	return strconv.Itoa(i + 1)
}

// readChoice prompts until it gets a valid option letter, empty input to
// skip, or EOF.
func readChoice(reader *bufio.Reader, optionCount int) (int, bool) {
	for {
		fmt.Print("Your answer (enter to skip): ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return 0, false
		}
		line = strings.TrimSpace(strings.ToUpper(line))
		if line == "" {
			return 0, false
		}
		if len(line) == 1 {
			idx := int(line[0] - 'A')
			if idx >= 0 && idx < optionCount {
				return idx, true
			}
		}
		fmt.Println("Please answer with an option letter.")
	}
}
