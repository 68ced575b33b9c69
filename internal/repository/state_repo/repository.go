package state_repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"arcade_backend/internal/model"
	"arcade_backend/internal/repository"

	"github.com/redis/go-redis/v9"
)

// Шаблоны ключей в redis
const (
	streakKeyPattern       = "arcade:slot:streak:%d"
	gachaCountKeyPattern   = "arcade:gacha:count:%d"
	gachaHistoryKeyPattern = "arcade:gacha:history:%d"
	segmentKeyPattern      = "arcade:segment:%d"
	actionsKey             = "arcade:actions"
)

const (
	// Максимальная длина истории редкостей
	historyLimit = 10
	// Сколько последних записей аудита держим в списке
	actionsLimit = 1000
	// Дедлайн на одну операцию с кэшем. По таймауту сразу уходим в фолбэк
	opTimeout = 200 * time.Millisecond
	// Не чаще этого периода пишем warning про недоступный кэш
	warnPeriod = 30 * time.Second
)

// Репозиторий состояния движков поверх redis.
// Если кэш не настроен или недоступен, каждый метод прозрачно работает
// с процесс-локальными мапами. Фолбэк не разделяется между инстансами:
// в таком режиме сервис корректен только в одном экземпляре
type repo struct {
	rdb *redis.Client // nil, если кэш не сконфигурирован

	// Процесс-локальный фолбэк
	mtx      sync.RWMutex
	streaks  map[int]int
	counts   map[int]int
	history  map[int][]model.Rarity
	segments map[int]model.Segment
	actions  []model.Action

	// Ограничение частоты предупреждений о недоступности кэша
	warnMtx  sync.Mutex
	lastWarn time.Time
}

func NewStateRepository(rdb *redis.Client) repository.StateRepository {
	return &repo{
		rdb:      rdb,
		streaks:  make(map[int]int),
		counts:   make(map[int]int),
		history:  make(map[int][]model.Rarity),
		segments: make(map[int]model.Segment),
	}
}

// warnUnavailable - логирует недоступность кэша не чаще warnPeriod
func (r *repo) warnUnavailable(op string, err error) {
	r.warnMtx.Lock()
	defer r.warnMtx.Unlock()

	if time.Since(r.lastWarn) < warnPeriod {
		return
	}
	r.lastWarn = time.Now()
	log.Printf("state cache unavailable (%s), falling back to local store: %v", op, err)
}

// withTimeout - контекст с коротким дедлайном на операцию с кэшем
func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, opTimeout)
}

func (r *repo) GetStreak(ctx context.Context, id int) (int, error) {
	if r.rdb != nil {
		cctx, cancel := withTimeout(ctx)
		defer cancel()

		val, err := r.rdb.Get(cctx, fmt.Sprintf(streakKeyPattern, id)).Int()
		if err == nil {
			return val, nil
		}
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		r.warnUnavailable("get streak", err)
	}

	r.mtx.RLock()
	defer r.mtx.RUnlock()
	return r.streaks[id], nil
}

func (r *repo) SetStreak(ctx context.Context, id int, streak int) error {
	if r.rdb != nil {
		cctx, cancel := withTimeout(ctx)
		defer cancel()

		err := r.rdb.Set(cctx, fmt.Sprintf(streakKeyPattern, id), streak, 0).Err()
		if err == nil {
			return nil
		}
		r.warnUnavailable("set streak", err)
	}

	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.streaks[id] = streak
	return nil
}

func (r *repo) GetGachaCount(ctx context.Context, id int) (int, error) {
	if r.rdb != nil {
		cctx, cancel := withTimeout(ctx)
		defer cancel()

		val, err := r.rdb.Get(cctx, fmt.Sprintf(gachaCountKeyPattern, id)).Int()
		if err == nil {
			return val, nil
		}
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		r.warnUnavailable("get gacha count", err)
	}

	r.mtx.RLock()
	defer r.mtx.RUnlock()
	return r.counts[id], nil
}

func (r *repo) SetGachaCount(ctx context.Context, id int, count int) error {
	if r.rdb != nil {
		cctx, cancel := withTimeout(ctx)
		defer cancel()

		err := r.rdb.Set(cctx, fmt.Sprintf(gachaCountKeyPattern, id), count, 0).Err()
		if err == nil {
			return nil
		}
		r.warnUnavailable("set gacha count", err)
	}

	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.counts[id] = count
	return nil
}

// GetGachaHistory - история редкостей от свежей к старой, не длиннее 10
func (r *repo) GetGachaHistory(ctx context.Context, id int) ([]model.Rarity, error) {
	if r.rdb != nil {
		cctx, cancel := withTimeout(ctx)
		defer cancel()

		vals, err := r.rdb.LRange(cctx, fmt.Sprintf(gachaHistoryKeyPattern, id), 0, historyLimit-1).Result()
		if err == nil {
			history := make([]model.Rarity, 0, len(vals))
			for _, v := range vals {
				history = append(history, model.Rarity(v))
			}
			return history, nil
		}
		r.warnUnavailable("get gacha history", err)
	}

	r.mtx.RLock()
	defer r.mtx.RUnlock()

	history := r.history[id]
	if len(history) > historyLimit {
		history = history[:historyLimit]
	}
	// Копия, чтобы вызывающий не мутировал общий слайс
	out := make([]model.Rarity, len(history))
	copy(out, history)
	return out, nil
}

// SetGachaHistory - полная перезапись истории. Элемент 0 - самый свежий
func (r *repo) SetGachaHistory(ctx context.Context, id int, history []model.Rarity) error {
	if len(history) > historyLimit {
		history = history[:historyLimit]
	}

	if r.rdb != nil {
		cctx, cancel := withTimeout(ctx)
		defer cancel()

		key := fmt.Sprintf(gachaHistoryKeyPattern, id)
		vals := make([]interface{}, 0, len(history))
		for _, h := range history {
			vals = append(vals, string(h))
		}

		pipe := r.rdb.TxPipeline()
		pipe.Del(cctx, key)
		if len(vals) > 0 {
			pipe.RPush(cctx, key, vals...)
		}
		_, err := pipe.Exec(cctx)
		if err == nil {
			return nil
		}
		r.warnUnavailable("set gacha history", err)
	}

	r.mtx.Lock()
	defer r.mtx.Unlock()

	stored := make([]model.Rarity, len(history))
	copy(stored, history)
	r.history[id] = stored
	return nil
}

// GetUserSegment - сегмент пользователя. Сегменты пишет внешний процесс
// сегментации, здесь только чтение. Неизвестный пользователь - Low
func (r *repo) GetUserSegment(ctx context.Context, id int) model.Segment {
	if r.rdb != nil {
		cctx, cancel := withTimeout(ctx)
		defer cancel()

		val, err := r.rdb.Get(cctx, fmt.Sprintf(segmentKeyPattern, id)).Result()
		if err == nil {
			return model.ParseSegment(val)
		}
		if !errors.Is(err, redis.Nil) {
			r.warnUnavailable("get segment", err)
		} else {
			return model.SegmentLow
		}
	}

	r.mtx.RLock()
	defer r.mtx.RUnlock()

	if seg, ok := r.segments[id]; ok {
		return seg
	}
	return model.SegmentLow
}

// RecordAction - добавляет запись аудита. Сбой записи не должен ронять
// игровую операцию, поэтому ошибки только логируются
func (r *repo) RecordAction(ctx context.Context, id int, actionType string, value int) {
	action := model.Action{
		UserID:     id,
		ActionType: actionType,
		Value:      value,
		CreatedAt:  time.Now().UTC(),
	}

	data, err := json.Marshal(action)
	if err != nil {
		log.Printf("failed to marshal audit action: %v", err)
		return
	}

	if r.rdb != nil {
		cctx, cancel := withTimeout(ctx)
		defer cancel()

		pipe := r.rdb.TxPipeline()
		pipe.LPush(cctx, actionsKey, data)
		pipe.LTrim(cctx, actionsKey, 0, actionsLimit-1)
		_, err = pipe.Exec(cctx)
		if err == nil {
			return
		}
		r.warnUnavailable("record action", err)
	}

	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.actions = append(r.actions, action)
	if len(r.actions) > actionsLimit {
		r.actions = r.actions[len(r.actions)-actionsLimit:]
	}
}
