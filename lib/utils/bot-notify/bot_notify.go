package botnotify

import (
	"fmt"
	"net/http"
	"procurement-tools-backend/config"
	"strings"

	"github.com/sirupsen/logrus"
)

// SendTransition отправляет событие по заявке во внешний вебхук.
// Ошибки только логируются, на обработку заявки не влияют.
func SendTransition(requestID string, number int, status, actorFio string, logger *logrus.Entry) {
	if config.Conf.NotifyBot.Addr == "" {
		return
	}
	payload := fmt.Sprintf(
		`{"request_id":%q,"number":%d,"status":%q,"actor":%q}`,
		requestID, number, status, actorFio)
	resp, err := http.Post(config.Conf.NotifyBot.Addr, "application/json", strings.NewReader(payload))
	if err != nil {
		logger.WithError(err).Error("ошибка отправки уведомления о смене статуса")
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		logger.Errorf("вебхук уведомлений вернул статус %v", resp.StatusCode)
	}
}
