package service

import (
	"context"

	"elearn_backend/internal/domain"
	"elearn_backend/internal/storage"

	"github.com/sirupsen/logrus"
)

// QuestionService covers the Q&A forum: asking, listing, reading and
// replying. All operations are single inserts or reads with no
// cross-entity invariants.
type QuestionService struct {
	base
}

func NewQuestionService(sel *storage.Selector) *QuestionService {
	return &QuestionService{base{sel: sel}}
}

// Ask records a question; imagePath is whatever the upload layer produced
// and is stored verbatim (may be empty)
func (s *QuestionService) Ask(ctx context.Context, userID uint, title, content, imagePath string) (*domain.Question, error) {
	var question *domain.Question
	err := s.run(func(backend storage.Backend) error {
		created, err := backend.CreateQuestion(ctx, userID, title, content, imagePath)
		if err != nil {
			return err
		}
		question = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"user_id":     userID,
		"question_id": question.ID,
	}).Info("Question submitted")
	return question, nil
}

// List returns questions newest first, optionally only one user's
func (s *QuestionService) List(ctx context.Context, filter storage.QuestionFilter) ([]domain.Question, error) {
	var questions []domain.Question
	err := s.run(func(backend storage.Backend) error {
		got, err := backend.ListQuestions(ctx, filter)
		if err != nil {
			return err
		}
		questions = got
		return nil
	})
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// Get returns one question with its replies
func (s *QuestionService) Get(ctx context.Context, id uint) (*domain.Question, error) {
	var question *domain.Question
	err := s.run(func(backend storage.Backend) error {
		got, err := backend.GetQuestion(ctx, id)
		if err != nil {
			return err
		}
		question = got
		return nil
	})
	if err != nil {
		return nil, err
	}
	return question, nil
}

// Reply answers a question and flips its status to answered
func (s *QuestionService) Reply(ctx context.Context, questionID, userID uint, content string) (*domain.Reply, error) {
	var reply *domain.Reply
	err := s.run(func(backend storage.Backend) error {
		created, err := backend.CreateReply(ctx, questionID, userID, content)
		if err != nil {
			return err
		}
		reply = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"question_id": questionID,
		"reply_id":    reply.ID,
		"user_id":     userID,
	}).Info("Reply posted")
	return reply, nil
}
