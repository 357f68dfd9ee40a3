package classify

import "strings"

// portugueseStopwords mirrors the usual Portuguese stopword list used by
// text-classification toolkits. Filtered out before term weighting.
var portugueseStopwords = map[string]struct{}{}

func init() {
	words := strings.Fields(`
		de a o que e do da em um para é com não uma os no se na por mais as dos
		como mas foi ao ele das tem à seu sua ou ser quando muito há nos já
		está eu também só pelo pela até isso ela entre era depois sem mesmo
		aos ter seus quem nas me esse eles estão você tinha foram essa num nem
		suas meu às minha têm numa pelos elas havia seja qual será nós tenho
		lhe deles essas esses pelas este fosse dele tu te vocês vos lhes meus
		minhas teu tua teus tuas nosso nossa nossos nossas dela delas esta
		estes estas aquele aquela aqueles aquelas isto aquilo estou estamos
		estive esteve estivemos estiveram estava estávamos estavam sou somos
		são fomos fui foi éramos eram serei seremos serão seria seríamos
		seriam tem temos tinham tive teve tivemos tiveram terei teremos terão
		teria teríamos teriam
	`)
	for _, w := range words {
		portugueseStopwords[w] = struct{}{}
	}
}

func isStopword(token string) bool {
	_, ok := portugueseStopwords[token]
	return ok
}
