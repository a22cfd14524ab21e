// Package prompt is the line-oriented question/answer shell.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"foodrec/internal/domain"
	"foodrec/internal/service"
)

// SessionPort is the prompt-facing subset of a recommendation session.
type SessionPort interface {
	Query(req domain.Request) (service.QueryResult, error)
}

// Shell asks for intent on in and prints recommendations to out.
type Shell struct {
	session    SessionPort
	categories []string
	in         *bufio.Scanner
	out        io.Writer
}

// New builds a shell. categories is shown as examples for the first question.
func New(session SessionPort, categories []string, in io.Reader, out io.Writer) *Shell {
	return &Shell{session: session, categories: categories, in: bufio.NewScanner(in), out: out}
}

// Run loops until the user declines another search or input ends.
func (s *Shell) Run() error {
	fmt.Fprintln(s.out, "\nWELCOME TO THE SMART FOOD RECOMMENDER")
	fmt.Fprintln(s.out, "Answer a few simple questions and I'll suggest foods that match your goals.")
	for {
		req, err := s.ask()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		res, err := s.session.Query(req)
		if err != nil {
			fmt.Fprintf(s.out, "\nSorry, that request was rejected: %v\n", err)
		} else {
			s.print(res)
		}
		again, err := s.line("\nSearch again? [y/N]: ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if a := strings.ToLower(again); a != "y" && a != "yes" {
			return nil
		}
	}
}

func (s *Shell) ask() (domain.Request, error) {
	var req domain.Request
	examples := "Milk, Vegetables, Fruits, Meat, Snacks"
	if len(s.categories) > 0 {
		examples = strings.Join(s.categories[:min(5, len(s.categories))], ", ")
	}
	category, err := s.line(fmt.Sprintf("\n1) What kind of food are you looking for?\n   (Examples: %s)\n   Press Enter to skip: ", examples))
	if err != nil {
		return req, err
	}
	req.Category = category

	var goalMenu strings.Builder
	goalMenu.WriteString("\n2) What is your main goal?\n")
	for i, g := range domain.Goals {
		fmt.Fprintf(&goalMenu, "   %c) %s\n", 'a'+i, g.Label())
	}
	goalMenu.WriteString("   Type a, b, c, or d: ")
	for {
		ans, err := s.line(goalMenu.String())
		if err != nil {
			return req, err
		}
		if req.Goal, err = domain.ParseGoal(ans); err == nil {
			break
		}
		fmt.Fprintf(s.out, "   %v, please choose a, b, c, or d.\n", err)
	}

	var dietMenu strings.Builder
	dietMenu.WriteString("\n3) Any specific dietary concern?\n")
	for i, d := range domain.Diets {
		fmt.Fprintf(&dietMenu, "   %c) %s\n", 'a'+i, d.Label())
	}
	dietMenu.WriteString("   Type a, b, c, or d: ")
	for {
		ans, err := s.line(dietMenu.String())
		if err != nil {
			return req, err
		}
		if req.Diet, err = domain.ParseDiet(ans); err == nil {
			break
		}
		fmt.Fprintf(s.out, "   %v, please choose a, b, c, or d.\n", err)
	}

	desc, err := s.line("\n4) Describe the food in your own words\n   (Example: light, healthy, high protein, easy to digest): ")
	if err != nil {
		return req, err
	}
	req.Description = desc
	return req, nil
}

func (s *Shell) print(res service.QueryResult) {
	fmt.Fprintln(s.out, "\nTOP FOOD RECOMMENDATIONS FOR YOU:")
	if res.Added == 0 {
		fmt.Fprintln(s.out, "(no new matches; showing everything found this session)")
	}
	for _, c := range res.Cards {
		fmt.Fprintf(s.out, "• %s — %s\n", c.Record.Category, c.Record.Description)
	}
}

// line prints prompt and reads one trimmed line.
func (s *Shell) line(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}
