package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"gabble/internal/brain"
	"gabble/internal/sched"
	"gabble/internal/state"
)

// buildBrain loads the lexicon and replays the corpus into a fresh global
// brain.
func buildBrain() (*brain.Brain, *brain.Lexicon, error) {
	lex, err := brain.LoadLexicon(cfg.Paths.LexiconDir)
	if err != nil {
		return nil, nil, fmt.Errorf("lexicon: %w", err)
	}
	b := brain.NewBrain(lex, nil)
	if err := b.SetMarkovOrder(cfg.Brain.MarkovOrder); err != nil {
		return nil, nil, err
	}
	if err := b.SetMaxBlendChance(cfg.Brain.MaxBlendChance); err != nil {
		return nil, nil, err
	}

	lines := 0
	corpus := state.NewCorpus(cfg.Paths.CorpusPath)
	if err := corpus.Replay(func(line string) {
		b.Learn(line, cfg.Brain.CorrectSpelling)
		lines++
	}); err != nil {
		return nil, nil, err
	}
	logger.Info("brain ready",
		zap.Int("corpus_lines", lines),
		zap.Int("root_events", b.TotalRootCount()))
	return b, lex, nil
}

// chatScorer prefers candidates that are not echoes of the input and carries
// the average word probability through otherwise.
func chatScorer(input string) brain.Scorer {
	in := strings.Join(brain.Tokenize(input), " ")
	return func(u *brain.Utterance) float64 {
		if strings.Join(u.Words, " ") == in {
			return 0
		}
		return u.AverageWordProbability
	}
}

func runChat() error {
	global, lex, err := buildBrain()
	if err != nil {
		return err
	}
	db, err := state.Open(cfg.Paths.StatePath)
	if err != nil {
		return err
	}
	defer db.Close()

	corpus := state.NewCorpus(cfg.Paths.CorpusPath)

	// The session brain learns only this conversation; replies blend its
	// statistics with the global brain's.
	session := brain.NewBrain(lex, global)
	if err := session.SetMarkovOrder(cfg.Brain.MarkovOrder); err != nil {
		return err
	}
	if err := session.SetMaxBlendChance(cfg.Brain.MaxBlendChance); err != nil {
		return err
	}

	minDelay, _ := cfg.MinTypingDelay()
	out := sched.New(minDelay, cfg.Chat.TypingCPS, func(text string) {
		fmt.Println("gabble:", text)
		db.LogMessage("said", text)
	}, logger)
	stopOut := out.Start()
	defer stopOut()

	fmt.Println("gabble online. /speak for an unprompted line, /quit to leave.")
	if text, ok := global.GetGreeting(false); ok {
		out.Queue(text)
		db.LogMessage("greeting", text)
	}

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		switch line {
		case "/quit", "/exit":
			return nil
		case "/speak":
			if text, ok := session.GetRandomUtterance(true); ok {
				out.Queue(text)
				db.LogMessage("random", text)
			} else {
				fmt.Println("(silent)")
			}
			continue
		}

		db.LogMessage("heard", line)
		reply, ok := session.GetResponse(line, cfg.Chat.Candidates, true,
			cfg.Brain.CorrectSpelling, chatScorer(line))

		session.Learn(line, cfg.Brain.CorrectSpelling)
		global.Learn(line, cfg.Brain.CorrectSpelling)
		if err := corpus.Append(line); err != nil {
			logger.Warn("corpus append failed", zap.Error(err))
		}

		if !ok {
			fmt.Println("(silent)")
			continue
		}
		out.Queue(reply)
	}
}
