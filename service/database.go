package service

import (
	"sort"
	"time"

	"github.com/awesome-cap/hashmap"
	"github.com/google/uuid"
	"github.com/ratel-online/core/log"
	"github.com/ratel-online/mahjong16/config"
	"github.com/ratel-online/mahjong16/consts"
)

var tables = hashmap.New()

func createTable(seats []config.SeatConf) *Table {
	table := newTable(uuid.NewString(), seats)
	tables.Set(table.ID, table)
	return table
}

func deleteTable(table *Table) {
	if table != nil {
		tables.Del(table.ID)
	}
}

func GetTable(id string) *Table {
	if v, ok := tables.Get(id); ok {
		return v.(*Table)
	}
	return nil
}

func GetTables() []*Table {
	list := make([]*Table, 0)
	tables.Foreach(func(e *hashmap.Entry) {
		list = append(list, e.Value().(*Table))
	})
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list
}

// Cleanup removes finished tables idle for longer than maxAge.
func Cleanup(maxAge time.Duration) int {
	removed := 0
	for _, table := range GetTables() {
		table.Lock()
		expired := table.State == consts.TableStateFinished && table.ActiveTime.Add(maxAge).Before(time.Now())
		table.Unlock()
		if expired {
			log.Infof("table %s finished more than %s ago, removed.\n", table.ID, maxAge)
			deleteTable(table)
			removed++
		}
	}
	return removed
}
