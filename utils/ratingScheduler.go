package utils

import (
	"log"
	"time"

	"lms/database"
	courseModels "lms/models/course"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[COURSE-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// reconcileCourseRatings recomputes the cached rating average and review
// count for every course. Normally both are maintained on review upsert;
// this job repairs any drift.
func reconcileCourseRatings() {
	db := database.Database.Db

	var courses []courseModels.Course
	if err := db.Where("is_deleted = ?", false).Find(&courses).Error; err != nil {
		logScheduler("Error fetching courses: " + err.Error())
		return
	}

	for _, course := range courses {
		var stats struct {
			Avg   *float64
			Total int64
		}
		if err := db.Model(&courseModels.Review{}).
			Select("AVG(rating) as avg, COUNT(id) as total").
			Where("course_id = ?", course.ID).
			Scan(&stats).Error; err != nil {
			logScheduler("Error aggregating reviews: " + err.Error())
			continue
		}

		if err := db.Model(&courseModels.Course{}).Where("id = ?", course.ID).
			Updates(map[string]interface{}{"rating": stats.Avg, "review_count": stats.Total}).Error; err != nil {
			logScheduler("Error updating course rating: " + err.Error())
		}
	}
}

// reconcileProgress recomputes every cached Progress row from the
// completion records, catching rows left stale by content deletions
func reconcileProgress() {
	db := database.Database.Db

	var rows []courseModels.Progress
	if err := db.Find(&rows).Error; err != nil {
		logScheduler("Error fetching progress rows: " + err.Error())
		return
	}

	for _, row := range rows {
		var total, done int64

		db.Model(&courseModels.Content{}).
			Joins("JOIN modules ON modules.id = contents.module_id").
			Where("modules.course_id = ? AND modules.is_deleted = ? AND contents.is_deleted = ?", row.CourseID, false, false).
			Count(&total)

		if total > 0 {
			db.Model(&courseModels.CompletedContent{}).
				Joins("JOIN contents ON contents.id = completed_contents.content_id").
				Joins("JOIN modules ON modules.id = contents.module_id").
				Where("completed_contents.user_id = ? AND modules.course_id = ?", row.UserID, row.CourseID).
				Where("contents.is_deleted = ? AND modules.is_deleted = ?", false, false).
				Distinct("completed_contents.content_id").
				Count(&done)
		}

		percentage := 0.0
		if total > 0 {
			percentage = float64(done) / float64(total) * 100
		}

		if percentage != row.Percentage {
			db.Model(&courseModels.Progress{}).Where("id = ?", row.ID).Update("percentage", percentage)
		}
	}
}

// StartCourseScheduler starts the nightly reconciliation job
func StartCourseScheduler() {
	c := cron.New()

	// 03:00 every day
	c.AddFunc("0 3 * * *", func() {
		logScheduler("Starting nightly reconciliation")
		reconcileCourseRatings()
		reconcileProgress()
		logScheduler("Nightly reconciliation finished")
	})

	c.Start()
	logScheduler("Course scheduler started")
}
