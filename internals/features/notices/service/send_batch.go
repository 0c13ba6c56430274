// file: internals/features/notices/service/send_batch.go
package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"linksclub_backend/internals/constants"
	membermodel "linksclub_backend/internals/features/members/model"
)

// sendThrottle spaces consecutive MailJet calls so a 40-member batch stays
// well inside the API rate limit.
const sendThrottle = 100 * time.Millisecond

// SendResult is the per-call outcome of a batched notice run.
type SendResult struct {
	Sent      int      `json:"sent"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors"`
	Remaining int64    `json:"remaining"`
}

// Sender runs the renewal-notice batches.
type Sender struct {
	DB       *gorm.DB
	Notifier *Notifier
}

func NewSender(db *gorm.DB, n *Notifier) *Sender {
	return &Sender{DB: db, Notifier: n}
}

// SendBatch renders and emails notices to up to batchSize members who have
// not yet been sent one for the renewal year. A member without an email
// address, or whose notice cannot be built or delivered, is counted failed
// and the batch carries on. Successful sends are stamped so the next call
// picks up where this one left off.
func (s *Sender) SendBatch(ctx context.Context, year, batchSize int) (SendResult, error) {
	out := SendResult{Errors: []string{}}
	if batchSize <= 0 || batchSize > constants.BulkBatchSize {
		batchSize = constants.BulkBatchSize
	}

	members, err := s.pendingMembers(year, batchSize)
	if err != nil {
		return out, err
	}

	for i, m := range members {
		if i > 0 {
			time.Sleep(sendThrottle)
		}
		if err := s.sendOne(ctx, m, year); err != nil {
			out.Failed++
			out.Errors = append(out.Errors, fmt.Sprintf("%s (#%d): %v", m.FullName(), m.MemberClubNumber, err))
			continue
		}
		out.Sent++
	}

	remaining, err := s.countPending(year)
	if err != nil {
		return out, err
	}
	out.Remaining = remaining
	return out, nil
}

func (s *Sender) sendOne(ctx context.Context, m membermodel.MemberModel, year int) error {
	if m.MemberEmail == nil || *m.MemberEmail == "" {
		return fmt.Errorf("no email address on record")
	}

	notice, err := BuildNotice(s.DB, m, year)
	if err != nil {
		return err
	}
	if err := s.Notifier.Send(ctx, *m.MemberEmail, m.FullName(), notice); err != nil {
		return err
	}

	now := time.Now()
	return s.DB.Model(&membermodel.MemberModel{}).
		Where("member_id = ?", m.MemberID).
		Update("member_renewal_notice_sent_at", now).Error
}

// pendingQuery selects members not yet notified for the renewal year. A
// stamp from a previous year does not count.
func (s *Sender) pendingQuery(year int) *gorm.DB {
	cutoff := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return s.DB.Model(&membermodel.MemberModel{}).
		Where("member_renewal_notice_sent_at IS NULL OR member_renewal_notice_sent_at < ?", cutoff)
}

func (s *Sender) pendingMembers(year, limit int) ([]membermodel.MemberModel, error) {
	var members []membermodel.MemberModel
	err := s.pendingQuery(year).
		Order("member_club_number ASC").
		Limit(limit).
		Find(&members).Error
	return members, err
}

func (s *Sender) countPending(year int) (int64, error) {
	var n int64
	err := s.pendingQuery(year).Count(&n).Error
	return n, err
}
