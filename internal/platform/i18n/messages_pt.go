package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.BrazilianPortuguese

	// Titles
	message.SetString(lang, "title.login", "Entrar | Eventos")
	message.SetString(lang, "title.events", "Eventos")
	message.SetString(lang, "title.not_found", "Página não encontrada")

	// Login
	message.SetString(lang, "login.heading", "Entrar")
	message.SetString(lang, "login.username", "Usuário")
	message.SetString(lang, "login.password", "Senha")
	message.SetString(lang, "login.submit", "Entrar")

	// Events
	message.SetString(lang, "events.heading", "Eventos")
	message.SetString(lang, "events.signed_in_as", "Conectado como %s")
	message.SetString(lang, "events.sign_out", "Sair")
	message.SetString(lang, "events.search", "Buscar")
	message.SetString(lang, "events.clear", "Limpar")
	message.SetString(lang, "events.name", "Nome")
	message.SetString(lang, "events.date", "Data")
	message.SetString(lang, "events.participant", "Participante")
	message.SetString(lang, "events.created_by", "Criado por %s")
	message.SetString(lang, "events.participants", "Participantes")
	message.SetString(lang, "events.add", "Adicionar evento")
	message.SetString(lang, "events.update", "Salvar")
	message.SetString(lang, "events.delete", "Excluir")
	message.SetString(lang, "events.join", "Participar")
	message.SetString(lang, "events.join_name", "Seu nome")
	message.SetString(lang, "events.remove", "Remover")
	message.SetString(lang, "events.empty", "Nenhum evento encontrado.")
	message.SetString(lang, "events.total", "%d eventos")
	message.SetString(lang, "events.loading", "Carregando…")

	// Pagination
	message.SetString(lang, "pagination.first", "Primeira")
	message.SetString(lang, "pagination.prev", "Anterior")
	message.SetString(lang, "pagination.next", "Próxima")
	message.SetString(lang, "pagination.last", "Última")
	message.SetString(lang, "pagination.page", "Página %d de %d")

	// Not found
	message.SetString(lang, "not_found.message", "A página que você procura não existe.")
	message.SetString(lang, "not_found.back", "Voltar para o login")

	// Notices
	message.SetString(lang, "notice.signed_in", "Bem-vindo de volta.")
	message.SetString(lang, "notice.signed_out", "Você saiu da sua conta.")
	message.SetString(lang, "notice.event_created", "Evento criado.")
	message.SetString(lang, "notice.event_updated", "Evento atualizado.")
	message.SetString(lang, "notice.event_deleted", "Evento excluído.")
	message.SetString(lang, "notice.event_joined", "Você entrou no evento.")
	message.SetString(lang, "notice.participant_removed", "Participante removido.")

	// Errors
	message.SetString(lang, "error.unknown", "Algo deu errado. Tente novamente.")
	message.SetString(lang, "error.invalid_credentials", "Usuário ou senha inválidos.")
	message.SetString(lang, "error.credentials_required", "Usuário e senha são obrigatórios.")
	message.SetString(lang, "error.event_name_required", "O nome do evento é obrigatório.")
	message.SetString(lang, "error.event_date_required", "A data do evento é obrigatória.")
	message.SetString(lang, "error.event_id_invalid", "Identificador de evento inválido.")
	message.SetString(lang, "error.event_exists", "Já existe um evento com este nome e data.")
	message.SetString(lang, "error.event_not_found", "Evento não encontrado.")
	message.SetString(lang, "error.participant_name_required", "O nome do participante é obrigatório.")
	message.SetString(lang, "error.participant_id_required", "O identificador do participante é obrigatório.")
	message.SetString(lang, "error.participant_exists", "Este participante já está no evento.")
	message.SetString(lang, "error.participant_name_taken", "Alguém com este nome já está no evento.")
	message.SetString(lang, "error.participant_remove_failed", "Não foi possível remover o participante.")
	message.SetString(lang, "error.gateway_unreachable", "O serviço de eventos está inacessível.")
	message.SetString(lang, "error.gateway_status", "O serviço de eventos retornou um erro.")
	message.SetString(lang, "error.gateway_decode", "O serviço de eventos retornou uma resposta inesperada.")
	message.SetString(lang, "error.storage", "Falha no armazenamento local da sessão.")
}
