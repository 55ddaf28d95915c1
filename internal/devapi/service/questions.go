package service

import (
	"context"
	"slices"
	"strings"

	"github.com/aussiebroadwan/fireme/pkg/apisdk"
)

// ListQuestions returns owner's questions, newest first, with their answers
// attached. A non-blank search keeps questions containing it, ignoring case.
func (s *Service) ListQuestions(_ context.Context, owner int64, search string) []apisdk.Question {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search = strings.ToLower(strings.TrimSpace(search))
	out := make([]apisdk.Question, 0)
	for _, q := range s.questions {
		if q.owner != owner {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(q.Question.Question), search) {
			continue
		}
		out = append(out, s.withAnswers(q))
	}
	slices.SortFunc(out, func(a, b apisdk.Question) int { return newestFirst(a.ID, b.ID) })
	return out
}

func (s *Service) CreateQuestion(_ context.Context, owner int64, text string) (apisdk.Question, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return apisdk.Question{}, Invalid("question", "Question text cannot be left blank!")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	q := &ownedQuestion{
		Question: apisdk.Question{
			ID:         s.next("question"),
			Question:   text,
			IsActive:   true,
			CreatedAt:  now,
			ModifiedAt: now,
		},
		owner: owner,
	}
	s.questions[q.ID] = q
	return s.withAnswers(q), nil
}

func (s *Service) UpdateQuestion(_ context.Context, owner, id int64, text string) (apisdk.Question, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return apisdk.Question{}, Invalid("question", "Question text cannot be left blank!")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	q, err := s.ownQuestion(owner, id)
	if err != nil {
		return apisdk.Question{}, err
	}
	q.Question.Question = text
	q.ModifiedAt = s.now()
	return s.withAnswers(q), nil
}

// DeleteQuestion removes the question together with its answers.
func (s *Service) DeleteQuestion(_ context.Context, owner, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.ownQuestion(owner, id); err != nil {
		return err
	}
	delete(s.questions, id)
	for aid, a := range s.answers {
		if a.Question == id {
			delete(s.answers, aid)
		}
	}
	return nil
}

// ListAnswers returns the answers of one question ordered by id.
func (s *Service) ListAnswers(_ context.Context, owner, questionID int64) ([]apisdk.Answer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q, err := s.ownQuestion(owner, questionID)
	if err != nil {
		return nil, err
	}
	return s.answersOf(q.ID), nil
}

func (s *Service) AddAnswer(_ context.Context, owner, questionID int64, text string) (apisdk.Answer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.ownQuestion(owner, questionID); err != nil {
		return apisdk.Answer{}, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return apisdk.Answer{}, Invalid("answer", "Answer text cannot be blank!")
	}

	now := s.now()
	a := &apisdk.Answer{
		ID:         s.next("answer"),
		Question:   questionID,
		Answer:     text,
		CreatedAt:  now,
		ModifiedAt: now,
	}
	s.answers[a.ID] = a
	return *a, nil
}

func (s *Service) UpdateAnswer(_ context.Context, owner, id int64, text string) (apisdk.Answer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.ownAnswer(owner, id)
	if err != nil {
		return apisdk.Answer{}, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return apisdk.Answer{}, Invalid("answer", "Answer text cannot be blank!")
	}
	a.Answer = text
	a.ModifiedAt = s.now()
	return *a, nil
}

func (s *Service) DeleteAnswer(_ context.Context, owner, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.ownAnswer(owner, id); err != nil {
		return err
	}
	delete(s.answers, id)
	return nil
}

func (s *Service) ownQuestion(owner, id int64) (*ownedQuestion, error) {
	q, ok := s.questions[id]
	if !ok || q.owner != owner {
		return nil, ErrNotFound
	}
	return q, nil
}

func (s *Service) ownAnswer(owner, id int64) (*apisdk.Answer, error) {
	a, ok := s.answers[id]
	if !ok {
		return nil, ErrNotFound
	}
	if _, err := s.ownQuestion(owner, a.Question); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) withAnswers(q *ownedQuestion) apisdk.Question {
	out := q.Question
	out.Answers = s.answersOf(q.ID)
	return out
}

func (s *Service) answersOf(questionID int64) []apisdk.Answer {
	out := make([]apisdk.Answer, 0)
	for _, a := range s.answers {
		if a.Question == questionID {
			out = append(out, *a)
		}
	}
	slices.SortFunc(out, func(a, b apisdk.Answer) int { return -newestFirst(a.ID, b.ID) })
	return out
}
