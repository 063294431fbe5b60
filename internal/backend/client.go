package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/fathsl/ranya-front-sub000/internal/model"
)

var (
	// ErrEvaluationNotFound signals a missing evaluation record.
	ErrEvaluationNotFound = errors.New("evaluation not found")
	// ErrNoQuestions signals that the evaluation loaded fine but holds no
	// questions. Distinct from a transport failure; neither is retried.
	ErrNoQuestions = errors.New("no questions available for evaluation")
)

// Client talks to the external learning store over REST. It is the only
// component that knows the store's transport details; everything above it
// works against the QuestionSource/CertificateIssuer ports.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a learning store client
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// doRequest performs a single HTTP round trip. Failures surface to the user
// with a manual retry affordance, so there is no automatic retry here.
func (c *Client) doRequest(ctx context.Context, method, path string, body io.Reader) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("learning store unreachable: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response body: %w", err)
	}

	return respBody, resp.StatusCode, nil
}

// GetEvaluation fetches a single evaluation definition, without questions
func (c *Client) GetEvaluation(ctx context.Context, evaluationID string) (*model.Evaluation, error) {
	respBody, status, err := c.doRequest(ctx, http.MethodGet, "/evaluations/"+evaluationID, nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, ErrEvaluationNotFound
	}
	if status >= 400 {
		return nil, fmt.Errorf("learning store error %d: %s", status, string(respBody))
	}

	var eval model.Evaluation
	if err := json.Unmarshal(respBody, &eval); err != nil {
		return nil, fmt.Errorf("failed to parse evaluation: %w", err)
	}
	return &eval, nil
}

// ListQuestions fetches the full question bank and filters it locally to the
// requested evaluation, tolerating foreign keys serialized as numbers or
// strings. The result is sorted by order ascending, ties kept in original
// backend order.
func (c *Client) ListQuestions(ctx context.Context, evaluationID string) ([]model.Question, error) {
	respBody, status, err := c.doRequest(ctx, http.MethodGet, "/questions", nil)
	if err != nil {
		return nil, err
	}
	if status >= 400 {
		return nil, fmt.Errorf("learning store error %d: %s", status, string(respBody))
	}

	var all []model.Question
	if err := json.Unmarshal(respBody, &all); err != nil {
		return nil, fmt.Errorf("failed to parse questions: %w", err)
	}

	want := strings.TrimSpace(evaluationID)
	var questions []model.Question
	for _, q := range all {
		if strings.TrimSpace(q.EvaluationID.String()) == want {
			questions = append(questions, q)
		}
	}

	sort.SliceStable(questions, func(i, j int) bool {
		return questions[i].Order < questions[j].Order
	})

	return questions, nil
}

// LoadEvaluation assembles the immutable evaluation blueprint: definition
// plus its sorted question list. Implements service.QuestionSource.
func (c *Client) LoadEvaluation(ctx context.Context, evaluationID string) (*model.Evaluation, error) {
	eval, err := c.GetEvaluation(ctx, evaluationID)
	if err != nil {
		return nil, err
	}

	questions, err := c.ListQuestions(ctx, evaluationID)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("evaluation %s: %w", evaluationID, ErrNoQuestions)
	}

	warnMalformed(evaluationID, questions)

	eval.Questions = questions
	return eval, nil
}

// warnMalformed flags data-quality problems at load time. Scoring itself
// stays total and silently withholds credit for these questions.
func warnMalformed(evaluationID string, questions []model.Question) {
	for _, q := range questions {
		if q.Type == model.QuestionTypeMultipleChoice && (len(q.Options) == 0 || strings.TrimSpace(q.CorrectAnswer) == "") {
			log.Printf("[Store Client] WARNING: evaluation %s question %s: multiple-choice without options or correct answer, it can never be credited", evaluationID, q.ID)
		}
	}
}

// IssueCertificate posts a certificate-creation request. Called at most once
// per passing completion; failures are reported, never retried. Implements
// service.CertificateIssuer.
func (c *Client) IssueCertificate(ctx context.Context, req *model.CertificateRequest) (*model.CertificateRecord, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode certificate request: %w", err)
	}

	respBody, status, err := c.doRequest(ctx, http.MethodPost, "/certificates", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	if status >= 400 {
		return nil, fmt.Errorf("certificate creation failed %d: %s", status, string(respBody))
	}

	var record model.CertificateRecord
	if err := json.Unmarshal(respBody, &record); err != nil {
		return nil, fmt.Errorf("failed to parse certificate response: %w", err)
	}
	return &record, nil
}
