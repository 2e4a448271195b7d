/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package ingest

import (
	"errors"
	"fmt"

	"github.com/humaidq/labwave/ledger"
)

// Chat replies, in the requesters' language.
const (
	replyGreeting = "👋 Привет! Отправь PDF с анализами.\n" +
		"Перед использованием укажи таблицу: setledger <ID или ссылка>\n" +
		"ID таблицы: это длинная строка в URL после /d/"
	replyUsage        = "Использование: setledger <ID или ссылка>"
	replyLinkSaved    = "✔ Таблица сохранена: %s"
	replyLinkFailed   = "Не удалось сохранить таблицу, попробуйте позже."
	replyNoLink       = "Вы не указали Google Sheet. Отправьте: setledger <ID>"
	replyNotPDF       = "Пожалуйста, отправьте файл в формате PDF."
	replyParsing      = "🔎 Парсю PDF..."
	replySummary      = "Пациент: %s\nДата: %s\nПоказателей: %d"
	replyParseError   = "Ошибка при разборе PDF."
	replySheetError   = "Ошибка работы с Google Sheets (создание листа)."
	replyRowsError    = "Ошибка при создании строк анализов."
	replyColumnError  = "Ошибка при создании колонки с датой."
	replyValuesError  = "Ошибка при записи значений в таблицу."
	replyPartialWrite = "⚠️ Записано %d из %d значений."
	replySuccess      = "✅ Данные записаны в Google Sheet."
)

// Summary returns the parse summary reply, or an empty string when the
// run produced no record.
func (o *Outcome) Summary() string {
	if o.Record == nil {
		return ""
	}

	return fmt.Sprintf(replySummary, o.Record.PatientName, o.Record.SampleDate, len(o.Record.Analytes))
}

// ReplyText returns the final status reply for this outcome.
func (o *Outcome) ReplyText() string {
	switch o.Stage {
	case StageParse:
		return replyParseError

	case StageApply:
		if errors.Is(o.Err, ledger.ErrPartialWrite) && o.Applied != nil {
			total := o.Applied.CellsWritten + len(o.Applied.Failed)
			return fmt.Sprintf(replyPartialWrite, o.Applied.CellsWritten, total)
		}

		switch ledger.FailedStep(o.Err) {
		case ledger.StepSheet:
			return replySheetError
		case ledger.StepRows:
			return replyRowsError
		case ledger.StepColumn:
			return replyColumnError
		default:
			return replyValuesError
		}

	default:
		return replySuccess
	}
}
