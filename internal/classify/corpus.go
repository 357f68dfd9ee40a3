package classify

import "mailtriage/internal/model"

// TrainingCorpus is the curated set of short Portuguese sentences the
// artifact is fitted on. Productive sentences ask for action from support;
// unproductive ones are greetings and thanks that need no follow-up.
func TrainingCorpus() []Sample {
	productive := []string{
		"Preciso de ajuda com o acesso ao sistema",
		"Como faço para atualizar meus dados no portal?",
		"O relatório de vendas não está carregando",
		"Qual é o status da minha solicitação de suporte?",
		"Poderiam enviar o comprovante da transação?",
		"Estou enfrentando erro ao tentar entrar no sistema",
		"Favor verificar o chamado número 12345",
		"Solicito a segunda via do boleto deste mês",
		"Não consigo redefinir minha senha de acesso",
		"O aplicativo apresenta erro ao processar o pagamento",
		"Gostaria de saber o andamento do meu cadastro",
		"Preciso do extrato da minha conta para o contador",
		"A transferência ainda não caiu na conta do destinatário",
		"Podem confirmar o recebimento dos documentos enviados?",
		"Houve uma cobrança indevida na minha fatura",
		"Necessito de suporte para emitir a nota fiscal",
	}
	unproductive := []string{
		"Feliz natal e boas festas para todos!",
		"Agradeço o excelente atendimento de sempre",
		"Bom dia, desejo uma ótima semana",
		"Parabéns pelo ótimo trabalho!",
		"Obrigado, tudo resolvido!",
		"Tenham um ótimo fim de semana",
		"Muito obrigado pela ajuda, tudo certo!",
		"Feliz ano novo a toda a equipe",
		"Agradecemos a parceria de sempre",
		"Abraços e até a próxima",
		"Mensagem recebida, obrigado!",
		"Que vocês tenham um excelente feriado",
		"Gratidão pelo atendimento atencioso",
		"Tudo certo por aqui, obrigada pelo retorno",
	}

	samples := make([]Sample, 0, len(productive)+len(unproductive))
	for _, text := range productive {
		samples = append(samples, Sample{Text: text, Category: model.CategoryProductive})
	}
	for _, text := range unproductive {
		samples = append(samples, Sample{Text: text, Category: model.CategoryUnproductive})
	}
	return samples
}
