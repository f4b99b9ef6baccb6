package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ForUpdate добавляет к запросу эксклюзивную блокировку строк
// (SELECT ... FOR UPDATE). Блокировка всегда вешается на запрос по одной
// таблице без JOIN: внешняя сторона outer join не блокируется, а лишние
// строки только увеличивают contention.
//
// Для sqlite клауза опускается: диалект не знает FOR UPDATE, писатель там
// в любом случае один, и транзакция сама сериализует изменения.
func ForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
