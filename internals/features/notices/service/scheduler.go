// file: internals/features/notices/service/scheduler.go
package service

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"linksclub_backend/internals/configs"
	membermodel "linksclub_backend/internals/features/members/model"
)

// StartRenewalScheduler starts the optional renewal-season cron. The
// schedule comes from RENEWAL_CRON (standard cron spec); when unset the
// scheduler stays off. The job only reports counts, the actual sends stay
// behind the admin endpoint.
func StartRenewalScheduler(db *gorm.DB) *cron.Cron {
	spec := configs.GetEnv("RENEWAL_CRON")
	if spec == "" {
		log.Println("[SCHEDULER] RENEWAL_CRON not set, renewal scheduler disabled")
		return nil
	}

	c := cron.New()
	_, err := c.AddFunc(spec, func() { logRenewalStatus(db) })
	if err != nil {
		log.Printf("[SCHEDULER] invalid RENEWAL_CRON %q: %v", spec, err)
		return nil
	}
	c.Start()
	log.Printf("[SCHEDULER] renewal scheduler running (%s)", spec)
	return c
}

func logRenewalStatus(db *gorm.DB) {
	now := time.Now()
	horizon := datatypes.Date(now.AddDate(0, 1, 0))

	var expiring int64
	if err := db.Model(&membermodel.MemberModel{}).
		Where("member_date_expires IS NOT NULL AND member_date_expires <= ?", horizon).
		Count(&expiring).Error; err != nil {
		log.Printf("[SCHEDULER] expiring-member count failed: %v", err)
		return
	}

	cutoff := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	var unsent int64
	if err := db.Model(&membermodel.MemberModel{}).
		Where("member_renewal_notice_sent_at IS NULL OR member_renewal_notice_sent_at < ?", cutoff).
		Count(&unsent).Error; err != nil {
		log.Printf("[SCHEDULER] unsent-notice count failed: %v", err)
		return
	}

	log.Printf("[SCHEDULER] renewals: %d members expire within a month, %d notices not yet sent", expiring, unsent)
}
