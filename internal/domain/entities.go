package domain

// EventKind — дискриминант входящего события.
type EventKind string

const (
	EventCommand EventKind = "command"
	EventPhoto   EventKind = "photo"
	EventVideo   EventKind = "video"
)

// MediaReference идентифицирует скачиваемый файл на стороне Telegram.
// RemotePath заполняется при резолве ссылки.
type MediaReference struct {
	FileID     string `json:"file_id"`
	RemotePath string `json:"remote_path,omitempty"`
}

// RemoteFile — результат резолва MediaReference: прямая ссылка и размер.
type RemoteFile struct {
	Ref  MediaReference
	URL  string
	Size int64
}

// InboundEvent описывает один входящий апдейт.
type InboundEvent struct {
	UpdateID int              `json:"update_id"`
	ChatID   int64            `json:"chat_id"`
	UserID   int64            `json:"user_id,omitempty"`
	Kind     EventKind        `json:"kind"`
	Command  string           `json:"command,omitempty"`
	Text     string           `json:"text,omitempty"`
	Photos   []MediaReference `json:"photos,omitempty"`
	Video    *MediaReference  `json:"video,omitempty"`
}

// LargestPhoto возвращает последний вариант разрешения фото.
// Bot API отдаёт варианты по возрастанию, последний — максимальный.
func (e InboundEvent) LargestPhoto() (MediaReference, bool) {
	if len(e.Photos) == 0 {
		return MediaReference{}, false
	}
	return e.Photos[len(e.Photos)-1], true
}

// AuxState — снимок вспомогательного состояния чата и пользователя
// на момент диспетчеризации. Состоянием владеет диспетчер, ядро его не меняет.
type AuxState struct {
	Chat map[string]any `json:"chat"`
	User map[string]any `json:"user"`
}
