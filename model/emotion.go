package model

// Emotion is one entry of the fixed mood catalog, including the canned
// content shown while the suggestion service is unavailable.
type Emotion struct {
	ID          string   `json:"id"`
	Label       string   `json:"label"`
	Icon        string   `json:"icon"`
	Greeting    string   `json:"greeting"`
	Color       string   `json:"color"`
	Messages    []string `json:"messages"`
	Suggestions []string `json:"suggestions"`
}

var Emotions = map[string]Emotion{
	"longing": {
		ID:       "longing",
		Label:    "Com saudade",
		Icon:     "💭",
		Greeting: "A saudade é só o amor querendo te abraçar.",
		Color:    "#D4A5A5",
		Messages: []string{
			"Cada minuto longe é um minuto mais perto de te ver.",
			"Feche os olhos por um segundo... estou aí com você.",
			"Onde quer que eu esteja, meu pensamento te encontra.",
			"Você é o meu lugar favorito no mundo.",
		},
		Suggestions: []string{"Ver fotos nossas", "Ouvir nossa playlist", "Planejar nosso jantar"},
	},
	"tired": {
		ID:       "tired",
		Label:    "Cansada(o)",
		Icon:     "😔",
		Greeting: "Deixe o peso do dia aqui fora. Agora é só nós.",
		Color:    "#A5B5D4",
		Messages: []string{
			"Você fez o seu melhor hoje. Agora, descanse.",
			"Queria ser seu travesseiro agora para te acolher.",
			"Respire fundo. O mundo pode esperar um pouco.",
			"Meu abraço está reservado e quentinho para você.",
		},
		Suggestions: []string{"Respiração guiada", "Música calma", "Banho relaxante"},
	},
	"sad": {
		ID:       "sad",
		Label:    "Triste",
		Icon:     "😢",
		Greeting: "Está tudo bem não estar bem. Eu seguro sua mão.",
		Color:    "#B5A5D4",
		Messages: []string{
			"Estou aqui. Não importa o que aconteça.",
			"Chorar limpa a alma. Eu te acolho em silêncio.",
			"Isso também vai passar, e eu estarei ao seu lado.",
			"Você é mais forte do que imagina, e mais amada(o) do que sente.",
		},
		Suggestions: []string{"Me ligar", "Escrever o que sente", "Ver um vídeo fofo"},
	},
	"happy": {
		ID:       "happy",
		Label:    "Feliz",
		Icon:     "😊",
		Greeting: "Sua alegria ilumina tudo ao meu redor!",
		Color:    "#D4C9A5",
		Messages: []string{
			"Ver você feliz é o meu maior presente.",
			"Guarda esse sorriso pra mim? Quero ver ele de perto.",
			"O mundo fica mais colorido quando você está bem.",
			"Vamos comemorar cada pequena vitória juntos!",
		},
		Suggestions: []string{"Me contar a novidade", "Dançar uma música", "Sorrir mais uma vez"},
	},
	"close": {
		ID:       "close",
		Label:    "Só sentir você perto",
		Icon:     "😌",
		Greeting: "Sinta minha presença. Estou aqui, batendo no mesmo ritmo.",
		Color:    "#E5E5E5",
		Messages: []string{
			"Não precisamos de palavras, apenas de conexão.",
			"Meu coração chama o seu agora.",
			"Sinta o calor da minha mão na sua.",
			"Estamos sob o mesmo céu, respirando o mesmo ar.",
		},
		Suggestions: []string{"Modo batida do coração", "Meditação em dupla", "Silêncio compartilhado"},
	},
}
