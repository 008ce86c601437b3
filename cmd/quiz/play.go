package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/kdimtricp/auteur/internal/logging"
	"github.com/kdimtricp/auteur/internal/models"
	"github.com/kdimtricp/auteur/internal/quiz"
	"github.com/kdimtricp/auteur/internal/recommendation"
	"github.com/kdimtricp/auteur/internal/tmdb"
)

// staticPool serves a fixed movie list loaded from disk.
type staticPool []models.Movie

func (p staticPool) GetTopRatedMovies(ctx context.Context) ([]models.Movie, error) {
	return p, nil
}

func loadPool(path string) (staticPool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading pool: %w", err)
	}
	var movies []models.Movie
	if err := json.Unmarshal(data, &movies); err != nil {
		return nil, fmt.Errorf("parsing pool %s: %w", path, err)
	}
	return staticPool(movies), nil
}

func (c *cli) service() (*recommendation.Service, error) {
	var catalog recommendation.Catalog
	if c.poolPath != "" {
		pool, err := loadPool(c.poolPath)
		if err != nil {
			return nil, err
		}
		catalog = pool
	} else {
		client := tmdb.NewClient(c.cfg.TMDb.ClientConfig())
		if !client.Configured() {
			return nil, errors.New("TMDB_API_KEY is not set; pass --pool to play offline")
		}
		catalog = tmdb.NewCatalog(client, nil, c.cfg.TMDb.CatalogConfig(), logging.Logger())
	}

	svcCfg := c.cfg.Quiz.ServiceConfig()
	if c.questions > 0 {
		svcCfg.QuestionCount = c.questions
	}
	if c.options > 0 {
		svcCfg.OptionCount = c.options
	}
	if c.count > 0 {
		svcCfg.RecommendationCount = c.count
	}

	gen := quiz.NewGenerator(quiz.WithLogger(logging.WithComponent("quiz")))
	return recommendation.NewService(gen, catalog, svcCfg, logging.Logger()), nil
}

func (c *cli) play(ctx context.Context, in io.Reader, out io.Writer) error {
	svc, err := c.service()
	if err != nil {
		return err
	}

	snap, err := svc.StartSession(ctx)
	if err != nil {
		return err
	}
	input := bufio.NewScanner(in)

	for snap.CurrentQuestion != nil {
		q := *snap.CurrentQuestion
		fmt.Fprintf(out, "\n%s %s\n", blue(fmt.Sprintf("[%d/%d]", snap.Answered+1, snap.Total)), bold(q.Text))
		for i, opt := range q.Options {
			fmt.Fprintf(out, "  %s %s\n", cyan(strconv.Itoa(i+1)+")"), opt.Text)
		}

		opt, err := readChoice(input, out, q.Options)
		if err != nil {
			return err
		}
		if snap, err = svc.SubmitAnswer(snap.ID, q.ID, opt.ID); err != nil {
			return err
		}
	}

	fmt.Fprintln(out, gray("\nScoring the catalog..."))
	results, err := svc.Recommendations(ctx, snap.ID)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Fprintln(out, yellow("Nothing in the pool matched your answers."))
		return nil
	}

	fmt.Fprintf(out, "\n%s\n", bold("Your recommendations"))
	for i, r := range results {
		year := ""
		if y := r.Movie.ReleaseYear(); y > 0 {
			year = fmt.Sprintf(" (%d)", y)
		}
		fmt.Fprintf(out, "%s %s%s %s\n", green(fmt.Sprintf("%2d.", i+1)), bold(r.Movie.Title), year, gray(fmt.Sprintf("score %.2f", r.Score)))
		if len(r.MatchReasons) > 0 {
			fmt.Fprintf(out, "    %s\n", gray(strings.Join(r.MatchReasons, " · ")))
		}
	}
	return nil
}

// readChoice prompts until a valid 1-based option number is entered.
func readChoice(input *bufio.Scanner, out io.Writer, options []models.QuizOption) (models.QuizOption, error) {
	for {
		fmt.Fprint(out, yellow("> "))
		if !input.Scan() {
			if err := input.Err(); err != nil {
				return models.QuizOption{}, err
			}
			return models.QuizOption{}, io.ErrUnexpectedEOF
		}
		n, err := strconv.Atoi(strings.TrimSpace(input.Text()))
		if err == nil && n >= 1 && n <= len(options) {
			return options[n-1], nil
		}
		fmt.Fprintf(out, "%s\n", red(fmt.Sprintf("pick a number from 1 to %d", len(options))))
	}
}

func (c *cli) printQuestions(out io.Writer) error {
	gen := quiz.NewGenerator(quiz.WithLogger(logging.WithComponent("quiz")))

	questionCount := c.questions
	if questionCount <= 0 {
		questionCount = c.cfg.Quiz.QuestionCount
	}
	optionCount := c.options
	if optionCount <= 0 {
		optionCount = c.cfg.Quiz.OptionCount
	}

	data, err := json.MarshalIndent(gen.GenerateQuestions(questionCount, optionCount), "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}
