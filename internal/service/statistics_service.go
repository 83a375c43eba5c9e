package service

import (
	"time"

	"github.com/NabievDev/NewPeople-sub000/internal/model"
	"github.com/NabievDev/NewPeople-sub000/internal/repository"
)

// closedStatuses 计入平均处理时长的状态。
var closedStatuses = []string{model.StatusResolved, model.StatusRejected}

type StatisticsService interface {
	Get() (*model.Statistics, error)
}

type statisticsService struct {
	appealRepo repository.AppealRepository
	statusRepo repository.StatusRepository
	tagRepo    repository.TagRepository
	userRepo   repository.UserRepository
}

func NewStatisticsService(
	appealRepo repository.AppealRepository,
	statusRepo repository.StatusRepository,
	tagRepo repository.TagRepository,
	userRepo repository.UserRepository,
) StatisticsService {
	return &statisticsService{
		appealRepo: appealRepo,
		statusRepo: statusRepo,
		tagRepo:    tagRepo,
		userRepo:   userRepo,
	}
}

// Get 汇总首页统计。按状态和按标签的列表都按配置顺序输出，数量为 0 的也保留。
func (s *statisticsService) Get() (*model.Statistics, error) {
	total, err := s.appealRepo.Count()
	if err != nil {
		return nil, err
	}

	statuses, err := s.statusRepo.FindAll()
	if err != nil {
		return nil, err
	}
	byStatus, err := s.appealRepo.CountByStatus()
	if err != nil {
		return nil, err
	}
	statusCounts := make([]model.StatusCount, 0, len(statuses))
	for _, st := range statuses {
		statusCounts = append(statusCounts, model.StatusCount{
			StatusKey: st.StatusKey,
			Name:      st.Name,
			Count:     byStatus[st.StatusKey],
		})
	}

	publicStats, err := s.tagStatistics(true)
	if err != nil {
		return nil, err
	}
	internalStats, err := s.tagStatistics(false)
	if err != nil {
		return nil, err
	}

	moderators, err := s.userRepo.CountByRole(model.RoleModerator)
	if err != nil {
		return nil, err
	}

	samples, err := s.appealRepo.ResolutionSamples(closedStatuses)
	if err != nil {
		return nil, err
	}

	return &model.Statistics{
		TotalAppeals:          total,
		ByStatus:              statusCounts,
		PublicTagStats:        publicStats,
		InternalTagStats:      internalStats,
		TotalModerators:       moderators,
		AverageResolutionTime: averageResolution(samples),
	}, nil
}

func (s *statisticsService) tagStatistics(isPublic bool) ([]model.TagStatistics, error) {
	tags, err := s.tagRepo.FindByPool(isPublic)
	if err != nil {
		return nil, err
	}
	counts, err := s.appealRepo.CountByTag(isPublic)
	if err != nil {
		return nil, err
	}
	stats := make([]model.TagStatistics, 0, len(tags))
	for _, t := range tags {
		stats = append(stats, model.TagStatistics{
			TagID:    t.ID,
			TagName:  t.Name,
			Count:    counts[t.ID],
			IsPublic: isPublic,
		})
	}
	return stats, nil
}

// averageResolution 计算平均处理时长（最后更新时间 - 创建时间），没有样本时返回 nil。
func averageResolution(samples []repository.ResolutionSample) *model.ResolutionTime {
	if len(samples) == 0 {
		return nil
	}
	var sum time.Duration
	for _, sample := range samples {
		if d := sample.UpdatedAt.Sub(sample.CreatedAt); d > 0 {
			sum += d
		}
	}
	return splitDuration(sum / time.Duration(len(samples)))
}

func splitDuration(d time.Duration) *model.ResolutionTime {
	const (
		day  = 24 * time.Hour
		week = 7 * day
	)
	rt := &model.ResolutionTime{}
	rt.Weeks = int(d / week)
	d -= time.Duration(rt.Weeks) * week
	rt.Days = int(d / day)
	d -= time.Duration(rt.Days) * day
	rt.Hours = int(d / time.Hour)
	d -= time.Duration(rt.Hours) * time.Hour
	rt.Minutes = int(d / time.Minute)
	return rt
}
