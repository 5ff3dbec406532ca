package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/consulting-marketplace/internal/domain"
	"github.com/spec-kit/consulting-marketplace/internal/events"
	"github.com/spec-kit/consulting-marketplace/internal/repository"
)

type idSeq struct {
	mu sync.Mutex
	n  int
}

func (s *idSeq) next(prefix string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("%s-%d", prefix, s.n)
}

type fakeUserRepo struct {
	seq   idSeq
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = r.seq.next("user")
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakeProjectRepo struct {
	seq      idSeq
	projects map[string]*domain.Project
	countErr error
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: map[string]*domain.Project{}}
}

func (r *fakeProjectRepo) Create(_ context.Context, project *domain.Project) error {
	project.ID = r.seq.next("project")
	project.CreatedAt = time.Now()
	project.UpdatedAt = project.CreatedAt
	clone := *project
	r.projects[project.ID] = &clone
	return nil
}

func (r *fakeProjectRepo) Update(_ context.Context, project *domain.Project) error {
	if _, ok := r.projects[project.ID]; !ok {
		return pgx.ErrNoRows
	}
	project.UpdatedAt = time.Now()
	clone := *project
	r.projects[project.ID] = &clone
	return nil
}

func (r *fakeProjectRepo) GetByID(_ context.Context, id string) (*domain.Project, error) {
	project, ok := r.projects[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *project
	return &clone, nil
}

func (r *fakeProjectRepo) ListWithFilter(_ context.Context, filter repository.ProjectFilter) ([]domain.Project, error) {
	result := make([]domain.Project, 0)
	for _, project := range r.projects {
		if filter.ClientID != nil && project.ClientID != *filter.ClientID {
			continue
		}
		if len(filter.Statuses) > 0 {
			match := false
			for _, status := range filter.Statuses {
				if project.Status == status {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		result = append(result, *project)
	}
	sortProjects(result)
	return result, nil
}

func (r *fakeProjectRepo) ListPublished(_ context.Context, _, _ int) ([]domain.Project, error) {
	result := make([]domain.Project, 0)
	for _, project := range r.projects {
		if project.Status == domain.ProjectStatusPublished {
			result = append(result, *project)
		}
	}
	sortProjects(result)
	return result, nil
}

func (r *fakeProjectRepo) CountByClient(_ context.Context, clientID string, statuses ...domain.ProjectStatus) (int64, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	var count int64
	for _, project := range r.projects {
		if project.ClientID != clientID {
			continue
		}
		if len(statuses) == 0 {
			count++
			continue
		}
		for _, status := range statuses {
			if project.Status == status {
				count++
				break
			}
		}
	}
	return count, nil
}

func sortProjects(projects []domain.Project) {
	sort.Slice(projects, func(i, j int) bool { return projects[i].ID < projects[j].ID })
}

type fakeQuotationRepo struct {
	seq        idSeq
	quotations map[string]*domain.Quotation
	countErr   error
}

func newFakeQuotationRepo() *fakeQuotationRepo {
	return &fakeQuotationRepo{quotations: map[string]*domain.Quotation{}}
}

func (r *fakeQuotationRepo) Create(_ context.Context, quotation *domain.Quotation) error {
	quotation.ID = r.seq.next("quotation")
	quotation.CreatedAt = time.Now()
	quotation.UpdatedAt = quotation.CreatedAt
	clone := *quotation
	r.quotations[quotation.ID] = &clone
	return nil
}

func (r *fakeQuotationRepo) UpdateStatus(_ context.Context, id string, status domain.QuotationStatus) error {
	quotation, ok := r.quotations[id]
	if !ok {
		return pgx.ErrNoRows
	}
	quotation.Status = status
	quotation.UpdatedAt = time.Now()
	return nil
}

func (r *fakeQuotationRepo) GetByID(_ context.Context, id string) (*domain.Quotation, error) {
	quotation, ok := r.quotations[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *quotation
	return &clone, nil
}

func (r *fakeQuotationRepo) GetPendingByProjectAndProvider(_ context.Context, projectID, providerID string) (*domain.Quotation, error) {
	for _, quotation := range r.quotations {
		if quotation.ProjectID == projectID && quotation.ProviderID == providerID && quotation.Status == domain.QuotationStatusPending {
			clone := *quotation
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeQuotationRepo) ListByProject(_ context.Context, projectID string) ([]domain.Quotation, error) {
	result := make([]domain.Quotation, 0)
	for _, quotation := range r.quotations {
		if quotation.ProjectID == projectID {
			result = append(result, *quotation)
		}
	}
	return result, nil
}

func (r *fakeQuotationRepo) ListByProvider(_ context.Context, providerID string, _, _ int) ([]domain.Quotation, error) {
	result := make([]domain.Quotation, 0)
	for _, quotation := range r.quotations {
		if quotation.ProviderID == providerID {
			result = append(result, *quotation)
		}
	}
	return result, nil
}

func (r *fakeQuotationRepo) RejectSiblings(_ context.Context, projectID, acceptedID string) error {
	for _, quotation := range r.quotations {
		if quotation.ProjectID == projectID && quotation.ID != acceptedID && quotation.Status == domain.QuotationStatusPending {
			quotation.Status = domain.QuotationStatusRejected
		}
	}
	return nil
}

func (r *fakeQuotationRepo) CountByProvider(_ context.Context, providerID string, statuses ...domain.QuotationStatus) (int64, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	var count int64
	for _, quotation := range r.quotations {
		if quotation.ProviderID != providerID {
			continue
		}
		if len(statuses) == 0 {
			count++
			continue
		}
		for _, status := range statuses {
			if quotation.Status == status {
				count++
				break
			}
		}
	}
	return count, nil
}

func (r *fakeQuotationRepo) CountPendingForClientProjects(_ context.Context, _ string) (int64, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	var count int64
	for _, quotation := range r.quotations {
		if quotation.Status == domain.QuotationStatusPending {
			count++
		}
	}
	return count, nil
}

type fakeContractRepo struct {
	seq       idSeq
	contracts map[string]*domain.Contract
}

func newFakeContractRepo() *fakeContractRepo {
	return &fakeContractRepo{contracts: map[string]*domain.Contract{}}
}

func (r *fakeContractRepo) Create(_ context.Context, contract *domain.Contract) error {
	contract.ID = r.seq.next("contract")
	contract.CreatedAt = time.Now()
	contract.UpdatedAt = contract.CreatedAt
	clone := *contract
	r.contracts[contract.ID] = &clone
	return nil
}

func (r *fakeContractRepo) Update(_ context.Context, contract *domain.Contract) error {
	if _, ok := r.contracts[contract.ID]; !ok {
		return pgx.ErrNoRows
	}
	contract.UpdatedAt = time.Now()
	clone := *contract
	r.contracts[contract.ID] = &clone
	return nil
}

func (r *fakeContractRepo) GetByID(_ context.Context, id string) (*domain.Contract, error) {
	contract, ok := r.contracts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *contract
	return &clone, nil
}

func (r *fakeContractRepo) ListByParty(_ context.Context, userID string, _, _ int) ([]domain.Contract, error) {
	result := make([]domain.Contract, 0)
	for _, contract := range r.contracts {
		if contract.Party(userID) {
			result = append(result, *contract)
		}
	}
	return result, nil
}

type fakeBoardRepo struct {
	seq      idSeq
	boards   map[string]*domain.Board
	comments map[string]*domain.BoardComment
}

func newFakeBoardRepo() *fakeBoardRepo {
	return &fakeBoardRepo{boards: map[string]*domain.Board{}, comments: map[string]*domain.BoardComment{}}
}

func (r *fakeBoardRepo) CreateBoard(_ context.Context, board *domain.Board) error {
	board.ID = r.seq.next("board")
	board.CreatedAt = time.Now()
	clone := *board
	r.boards[board.ID] = &clone
	return nil
}

func (r *fakeBoardRepo) GetBoardByID(_ context.Context, id string) (*domain.Board, error) {
	board, ok := r.boards[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *board
	return &clone, nil
}

func (r *fakeBoardRepo) CreateComment(_ context.Context, comment *domain.BoardComment) error {
	comment.ID = r.seq.next("comment")
	comment.CreatedAt = time.Now()
	comment.UpdatedAt = comment.CreatedAt
	clone := *comment
	r.comments[comment.ID] = &clone
	return nil
}

func (r *fakeBoardRepo) GetCommentByID(_ context.Context, id string) (*domain.BoardComment, error) {
	comment, ok := r.comments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *comment
	return &clone, nil
}

func (r *fakeBoardRepo) UpdateComment(_ context.Context, comment *domain.BoardComment) error {
	if _, ok := r.comments[comment.ID]; !ok {
		return pgx.ErrNoRows
	}
	comment.UpdatedAt = time.Now()
	clone := *comment
	r.comments[comment.ID] = &clone
	return nil
}

func (r *fakeBoardRepo) DeleteComment(_ context.Context, id string) error {
	if _, ok := r.comments[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.comments, id)
	return nil
}

func (r *fakeBoardRepo) ListComments(_ context.Context, boardID string) ([]domain.BoardComment, error) {
	result := make([]domain.BoardComment, 0)
	for _, comment := range r.comments {
		if comment.BoardID == boardID {
			result = append(result, *comment)
		}
	}
	return result, nil
}

type fakeChatRepo struct {
	seq      idSeq
	sessions map[string]*domain.ChatSession
	messages map[string]*domain.ChatMessage
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{sessions: map[string]*domain.ChatSession{}, messages: map[string]*domain.ChatMessage{}}
}

func (r *fakeChatRepo) CreateSession(_ context.Context, session *domain.ChatSession) error {
	session.ID = r.seq.next("session")
	session.CreatedAt = time.Now()
	session.UpdatedAt = session.CreatedAt
	clone := *session
	r.sessions[session.ID] = &clone
	return nil
}

func (r *fakeChatRepo) GetSessionByID(_ context.Context, id string) (*domain.ChatSession, error) {
	session, ok := r.sessions[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *session
	return &clone, nil
}

func (r *fakeChatRepo) GetSessionByContract(_ context.Context, contractID string) (*domain.ChatSession, error) {
	for _, session := range r.sessions {
		if session.ContractID == contractID {
			clone := *session
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeChatRepo) ListSessionsByUser(_ context.Context, userID string) ([]domain.ChatSession, error) {
	result := make([]domain.ChatSession, 0)
	for _, session := range r.sessions {
		if session.Party(userID) {
			result = append(result, *session)
		}
	}
	return result, nil
}

func (r *fakeChatRepo) CreateMessage(_ context.Context, message *domain.ChatMessage) error {
	message.ID = r.seq.next("message")
	message.CreatedAt = time.Now()
	clone := *message
	r.messages[message.ID] = &clone
	return nil
}

func (r *fakeChatRepo) ListMessages(_ context.Context, sessionID string, _, _ int) ([]domain.ChatMessage, error) {
	result := make([]domain.ChatMessage, 0)
	for _, message := range r.messages {
		if message.SessionID == sessionID {
			result = append(result, *message)
		}
	}
	return result, nil
}

type fakeNotificationRepo struct {
	seq           idSeq
	notifications map[string]*domain.Notification
	markAllCalls  int
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{notifications: map[string]*domain.Notification{}}
}

func (r *fakeNotificationRepo) Create(_ context.Context, notification *domain.Notification) error {
	notification.ID = r.seq.next("notification")
	notification.CreatedAt = time.Now()
	clone := *notification
	r.notifications[notification.ID] = &clone
	return nil
}

func (r *fakeNotificationRepo) GetByID(_ context.Context, id string) (*domain.Notification, error) {
	notification, ok := r.notifications[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *notification
	return &clone, nil
}

func (r *fakeNotificationRepo) ListByUser(_ context.Context, userID string, unreadOnly bool, _, _ int) ([]domain.Notification, error) {
	result := make([]domain.Notification, 0)
	for _, notification := range r.notifications {
		if notification.UserID != userID {
			continue
		}
		if unreadOnly && notification.ReadAt != nil {
			continue
		}
		result = append(result, *notification)
	}
	return result, nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, id string) (*domain.Notification, error) {
	notification, ok := r.notifications[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if notification.ReadAt == nil {
		now := time.Now()
		notification.ReadAt = &now
	}
	clone := *notification
	return &clone, nil
}

func (r *fakeNotificationRepo) MarkAllRead(_ context.Context, userID string) (int64, error) {
	r.markAllCalls++
	var updated int64
	for _, notification := range r.notifications {
		if notification.UserID == userID && notification.ReadAt == nil {
			now := time.Now()
			notification.ReadAt = &now
			updated++
		}
	}
	return updated, nil
}

type fakeMethodRepo struct {
	seq     idSeq
	methods map[string]*domain.PaymentMethod
}

func newFakeMethodRepo() *fakeMethodRepo {
	return &fakeMethodRepo{methods: map[string]*domain.PaymentMethod{}}
}

func (r *fakeMethodRepo) Create(_ context.Context, method *domain.PaymentMethod) error {
	method.ID = r.seq.next("method")
	method.CreatedAt = time.Now()
	method.UpdatedAt = method.CreatedAt
	clone := *method
	r.methods[method.ID] = &clone
	return nil
}

func (r *fakeMethodRepo) GetByID(_ context.Context, id string) (*domain.PaymentMethod, error) {
	method, ok := r.methods[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *method
	return &clone, nil
}

func (r *fakeMethodRepo) ListByUser(_ context.Context, userID string) ([]domain.PaymentMethod, error) {
	result := make([]domain.PaymentMethod, 0)
	for _, method := range r.methods {
		if method.UserID == userID {
			result = append(result, *method)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *fakeMethodRepo) CountByUser(_ context.Context, userID string) (int64, error) {
	var count int64
	for _, method := range r.methods {
		if method.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (r *fakeMethodRepo) SetDefault(_ context.Context, userID, id string) error {
	if _, ok := r.methods[id]; !ok {
		return pgx.ErrNoRows
	}
	for _, method := range r.methods {
		if method.UserID == userID {
			method.IsDefault = method.ID == id
		}
	}
	return nil
}

func (r *fakeMethodRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.methods[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.methods, id)
	return nil
}

func (r *fakeMethodRepo) PromoteMostRecent(_ context.Context, userID string) error {
	var newest *domain.PaymentMethod
	for _, method := range r.methods {
		if method.UserID != userID {
			continue
		}
		if newest == nil || method.CreatedAt.After(newest.CreatedAt) || (method.CreatedAt.Equal(newest.CreatedAt) && method.ID > newest.ID) {
			newest = method
		}
	}
	if newest != nil {
		newest.IsDefault = true
	}
	return nil
}

type fakePaymentRepo struct {
	seq      idSeq
	payments map[string]*domain.Payment
	sumErr   error
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: map[string]*domain.Payment{}}
}

func (r *fakePaymentRepo) Create(_ context.Context, payment *domain.Payment) error {
	payment.ID = r.seq.next("payment")
	payment.CreatedAt = time.Now()
	clone := *payment
	r.payments[payment.ID] = &clone
	return nil
}

func (r *fakePaymentRepo) ListByContract(_ context.Context, contractID string) ([]domain.Payment, error) {
	result := make([]domain.Payment, 0)
	for _, payment := range r.payments {
		if payment.ContractID == contractID {
			result = append(result, *payment)
		}
	}
	return result, nil
}

func (r *fakePaymentRepo) SumSucceededByPayer(_ context.Context, payerID string) (float64, error) {
	if r.sumErr != nil {
		return 0, r.sumErr
	}
	var total float64
	for _, payment := range r.payments {
		if payment.PayerID == payerID && payment.Status == domain.PaymentStatusSucceeded {
			total += payment.Amount
		}
	}
	return total, nil
}

func (r *fakePaymentRepo) SumSucceededByPayee(_ context.Context, payeeID string) (float64, error) {
	if r.sumErr != nil {
		return 0, r.sumErr
	}
	var total float64
	for _, payment := range r.payments {
		if payment.PayeeID == payeeID && payment.Status == domain.PaymentStatusSucceeded {
			total += payment.Amount
		}
	}
	return total, nil
}

type fakePortfolioRepo struct {
	seq   idSeq
	items map[string]*domain.PortfolioItem
}

func newFakePortfolioRepo() *fakePortfolioRepo {
	return &fakePortfolioRepo{items: map[string]*domain.PortfolioItem{}}
}

func (r *fakePortfolioRepo) Create(_ context.Context, item *domain.PortfolioItem) error {
	item.ID = r.seq.next("item")
	item.CreatedAt = time.Now()
	clone := *item
	r.items[item.ID] = &clone
	return nil
}

func (r *fakePortfolioRepo) GetByID(_ context.Context, id string) (*domain.PortfolioItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *item
	return &clone, nil
}

func (r *fakePortfolioRepo) ListByProvider(_ context.Context, providerID string) ([]domain.PortfolioItem, error) {
	result := make([]domain.PortfolioItem, 0)
	for _, item := range r.items {
		if item.ProviderID == providerID {
			result = append(result, *item)
		}
	}
	return result, nil
}

func (r *fakePortfolioRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.items, id)
	return nil
}

type fakeReviewRepo struct {
	seq     idSeq
	reviews map[string]*domain.Review
	avgErr  error
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: map[string]*domain.Review{}}
}

func (r *fakeReviewRepo) Create(_ context.Context, review *domain.Review) error {
	review.ID = r.seq.next("review")
	review.CreatedAt = time.Now()
	clone := *review
	r.reviews[review.ID] = &clone
	return nil
}

func (r *fakeReviewRepo) GetByContract(_ context.Context, contractID string) (*domain.Review, error) {
	for _, review := range r.reviews {
		if review.ContractID == contractID {
			clone := *review
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeReviewRepo) ListByProvider(_ context.Context, providerID string, _, _ int) ([]domain.Review, error) {
	result := make([]domain.Review, 0)
	for _, review := range r.reviews {
		if review.ProviderID == providerID {
			result = append(result, *review)
		}
	}
	return result, nil
}

func (r *fakeReviewRepo) AverageForProvider(_ context.Context, providerID string) (float64, error) {
	if r.avgErr != nil {
		return 0, r.avgErr
	}
	var sum, count float64
	for _, review := range r.reviews {
		if review.ProviderID == providerID {
			sum += float64(review.Rating)
			count++
		}
	}
	if count == 0 {
		return 0, nil
	}
	return sum / count, nil
}

// captureDispatcher records published events and still fans out to subscribed
// handlers the way the in-memory dispatcher does.
type captureDispatcher struct {
	mu        sync.Mutex
	published []events.Event
	listeners map[events.EventType][]events.EventHandler
}

func newCaptureDispatcher() *captureDispatcher {
	return &captureDispatcher{listeners: map[events.EventType][]events.EventHandler{}}
}

func (d *captureDispatcher) Publish(ctx context.Context, event events.Event) error {
	d.mu.Lock()
	d.published = append(d.published, event)
	handlers := append([]events.EventHandler{}, d.listeners[event.Type]...)
	d.mu.Unlock()

	for _, handler := range handlers {
		_ = handler(ctx, event)
	}
	return nil
}

func (d *captureDispatcher) Subscribe(eventType events.EventType, handler events.EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners[eventType] = append(d.listeners[eventType], handler)
}

func (d *captureDispatcher) eventsOfType(eventType events.EventType) []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	result := make([]events.Event, 0)
	for _, event := range d.published {
		if event.Type == eventType {
			result = append(result, event)
		}
	}
	return result
}
