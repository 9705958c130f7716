package transfer

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/ivanoskov/ordobank_bot/internal/bank"
	"github.com/ivanoskov/ordobank_bot/internal/session"
)

// State — состояние потока перевода.
type State int

const (
	StateIdle State = iota
	StateResolving
	StateResolved
	StateResolutionFailed
	StateCommitting
	StateCommitted
	StateCommitFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateResolving:
		return "resolving"
	case StateResolved:
		return "resolved"
	case StateResolutionFailed:
		return "resolution_failed"
	case StateCommitting:
		return "committing"
	case StateCommitted:
		return "committed"
	case StateCommitFailed:
		return "commit_failed"
	default:
		return "unknown"
	}
}

// API — часть банковского клиента, нужная потоку перевода.
type API interface {
	QueryIbanName(ctx context.Context, iban string) (string, error)
	Transfer(ctx context.Context, toIban, amount, description string, offRecord bool) error
}

// Flow проводит один черновик через двухфазный протокол: сначала
// подтверждение имени получателя, затем commit. Инвариант: commit
// недостижим без успешно подтвержденного имени. Committed и CommitFailed
// терминальны — повторная попытка означает новый черновик и новый Flow.
type Flow struct {
	id       string
	api      API
	accounts *session.AccountState
	draft    Draft

	mu            sync.Mutex
	state         State
	recipientName string
}

func NewFlow(api API, accounts *session.AccountState, draft Draft) *Flow {
	return &Flow{
		id:       uuid.New().String(),
		api:      api,
		accounts: accounts,
		draft:    draft,
		state:    StateIdle,
	}
}

func (f *Flow) Draft() Draft {
	return f.draft
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Flow) RecipientName() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.recipientName
}

// ResolveRecipient запрашивает имя получателя. Пустое имя в ответе
// переводит поток в ResolutionFailed: подтверждение остается
// недоступным.
func (f *Flow) ResolveRecipient(ctx context.Context) (string, error) {
	f.mu.Lock()
	if f.state != StateIdle {
		state := f.state
		f.mu.Unlock()
		return "", &bank.TransferRejectedError{Reason: fmt.Sprintf("resolution not allowed from state %s", state)}
	}
	f.state = StateResolving
	f.mu.Unlock()

	name, err := f.api.QueryIbanName(ctx, f.draft.ToIban)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.state = StateResolutionFailed
		return "", err
	}
	if name == "" {
		f.state = StateResolutionFailed
		return "", &bank.TransferRejectedError{Reason: "recipient name not found"}
	}

	f.state = StateResolved
	f.recipientName = name
	log.Printf("Перевод %s: получатель %s подтвержден как %q", f.id, f.draft.ToIban, name)
	return name, nil
}

// Commit отправляет перевод. Допустим только из Resolved; повторный
// вызов во время выполнения отклоняется без дублирующего запроса.
// Сумма форматируется ровно с двумя знаками, offRecord уходит как "1"/"0".
// Успех поднимает refreshAnyway, чтобы следующий показ обзора счета
// перезапросил данные; неудача флаг не трогает.
func (f *Flow) Commit(ctx context.Context) error {
	f.mu.Lock()
	if f.state != StateResolved {
		state := f.state
		f.mu.Unlock()
		return &bank.TransferRejectedError{Reason: fmt.Sprintf("commit not allowed from state %s", state)}
	}
	if f.draft.Amount <= 0 {
		f.state = StateCommitFailed
		f.mu.Unlock()
		return &bank.TransferRejectedError{Reason: "amount must be greater than zero"}
	}
	f.state = StateCommitting
	f.mu.Unlock()

	err := f.api.Transfer(ctx, f.draft.ToIban, fmt.Sprintf("%.2f", f.draft.Amount), f.draft.Notes, f.draft.OffRecord)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.state = StateCommitFailed
		log.Printf("Перевод %s не выполнен: %v", f.id, err)
		return err
	}

	f.state = StateCommitted
	f.accounts.SetRefreshAnyway(true)
	log.Printf("Перевод %s выполнен: %s -> %.2f", f.id, f.draft.ToIban, f.draft.Amount)
	return nil
}
