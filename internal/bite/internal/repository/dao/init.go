// Copyright 2023 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dao

import (
	"errors"

	"github.com/ego-component/egorm"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var (
	ErrRecordNotFound = gorm.ErrRecordNotFound
	// ErrToggleConflict 同一个用户并发切换同一个状态，另外一个请求先一步修改了数据
	ErrToggleConflict = errors.New("并发切换冲突")
	// ErrCounterUnderflow 计数已经是 0 了还要减，说明计数和明细已经不一致
	ErrCounterUnderflow = errors.New("计数减到负数")
)

const mysqlDuplicateEntry = 1062

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(
		&Post{},
		&Comment{},
		&Like{},
		&PostCounter{},
		&CounterMark{},
		&Collection{},
		&CollectionPost{},
		&HiddenPost{},
		&Mute{},
		&Report{},
	)
}

// isDuplicate 唯一索引冲突
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}
