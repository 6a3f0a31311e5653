// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

// Typing status phases, in display order.
const (
	StatusAnalyzing  = "Analizando tu pregunta..."
	StatusSearching  = "Buscando información en guías oficiales..."
	StatusGenerating = "Generando respuesta..."
)

// errorReplyPrefix starts the assistant message shown when a query fails.
const errorReplyPrefix = "Lo siento, ocurrió un error al procesar tu pregunta. " +
	"Por favor, verifica que el servidor esté funcionando y vuelve a intentarlo.\n\nError: "

// ErrorReply is the in-conversation text for a failed query.
func ErrorReply(err error) string {
	msg := "Error desconocido"
	if err != nil {
		msg = err.Error()
	}
	return errorReplyPrefix + msg
}

var (
	noticeCreateChatFailed = Notice{Kind: NoticeError, Title: "Error", Description: "No se pudo crear el chat."}
	noticeQueryFailed      = Notice{Kind: NoticeError, Title: "Error", Description: "No se pudo conectar con el servidor. Verifica que esté corriendo."}
	noticeLoadChatFailed   = Notice{Kind: NoticeError, Title: "Error", Description: "No se pudieron cargar los mensajes del chat."}
	noticeDeleteFailed     = Notice{Kind: NoticeError, Title: "Error", Description: "No se pudo eliminar el chat."}
	noticeChatDeleted      = Notice{Kind: NoticeSuccess, Title: "Chat eliminado", Description: "El chat ha sido eliminado exitosamente."}
	noticeProfileSaved     = Notice{Kind: NoticeSuccess, Title: "Información guardada", Description: "Tus datos clínicos han sido guardados localmente."}
	noticeProfileCleared   = Notice{Kind: NoticeSuccess, Title: "Datos borrados", Description: "Tus datos clínicos han sido eliminados."}
)
