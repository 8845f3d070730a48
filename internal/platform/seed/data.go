package seed

import "schooladmin/internal/domain/roster"

type sampleStudent struct {
	lastName, firstName, patronymic string
	birthYear                       int
	gender                          roster.Gender
	averageGrade                    float64
	grade                           int
	section                         string
}

var sampleStudents = []sampleStudent{
	{"Іванов", "Петро", "Сергійович", 2018, roster.GenderMale, 10.5, 1, "А"},
	{"Коваленко", "Анна", "Олегівна", 2019, roster.GenderFemale, 11.2, 1, "А"},
	{"Мельник", "Максим", "Вікторович", 2018, roster.GenderMale, 9.8, 1, "Б"},
	{"Савчук", "Олена", "Ігорівна", 2018, roster.GenderFemale, 10.9, 1, "Б"},
	{"Бойко", "Дмитро", "Павлович", 2018, roster.GenderMale, 9.1, 1, "А"},
	{"Шевченко", "Ірина", "Василівна", 2015, roster.GenderFemale, 10.0, 5, "А"},
	{"Захарченко", "Богдан", "Андрійович", 2015, roster.GenderMale, 10.1, 5, "Б"},
	{"Ткаченко", "Марія", "Романівна", 2015, roster.GenderFemale, 11.5, 5, "Б"},
	{"Шостак", "Анджела", "Констянтинівна", 2015, roster.GenderFemale, 11.5, 5, "А"},
	{"Савченко", "Любомир", "Андрійович", 2015, roster.GenderMale, 11.5, 5, "Б"},
	{"Кормот", "Даня", "Назарович", 2015, roster.GenderMale, 11.5, 5, "А"},
	{"Петришина", "Рита", "Олександрівна", 2015, roster.GenderFemale, 11.5, 5, "Б"},
	{"Сидоренко", "Назар", "Леонідович", 2008, roster.GenderMale, 9.5, 11, "А"},
	{"Степаненко", "Юрій", "Ілларіонович", 2008, roster.GenderMale, 7.2, 11, "Б"},
	{"Сойченко", "Криштіан", "Апанасійович", 2009, roster.GenderMale, 8.5, 11, "Б"},
	{"Старшенко", "Сигізмунд", "Валерійович", 2008, roster.GenderMale, 9.8, 11, "А"},
	{"Волошенко", "Олег", "Андріанович", 2008, roster.GenderMale, 10.7, 11, "Б"},
	{"Вогняненко", "Стефанія", "Віталіївна", 2009, roster.GenderFemale, 11.2, 11, "Б"},
	{"Тульчинська", "Марта", "Іванівна", 2009, roster.GenderFemale, 10.1, 11, "А"},
	{"Міндіч", "Яніна", "Іванівна", 2008, roster.GenderFemale, 10.7, 11, "Б"},
	{"Марченко", "Юлія", "Іванівна", 2008, roster.GenderFemale, 10.9, 11, "Б"},
	{"Григоренко", "Олег", "Петрович", 2012, roster.GenderMale, 8.9, 7, "А"},
	{"Соколова", "Аліна", "Максименко", 2010, roster.GenderFemale, 11.8, 9, "Б"},
	{"Радченко", "Лариса", "Миколаївна", 2010, roster.GenderFemale, 11.8, 9, "Б"},
	{"Міщенко", "Єлизаветта", "Денисович", 2015, roster.GenderFemale, 7.5, 6, "А"},
	{"Мачкуренко", "Ігор", "Видимович", 2014, roster.GenderMale, 3.5, 6, "А"},
	{"Власенко", "Максим", "Валерійович", 2016, roster.GenderMale, 7.5, 6, "Б"},
	{"Кравченко", "Назарій", "Павлович", 2017, roster.GenderMale, 11.1, 2, "А"},
	{"Федієнко", "Мартин", "Євгенович", 2016, roster.GenderMale, 5.5, 3, "Б"},
	{"Замора", "Джульєтта", "Львівна", 2015, roster.GenderMale, 7.1, 4, "Б"},
	{"Бульбаш", "Тарас", "Стасович", 2013, roster.GenderMale, 6.1, 7, "Б"},
	{"Чех", "Максим", "Оксенович", 2011, roster.GenderMale, 9.4, 8, "А"},
	{"Сова", "Віталія", "Вікторівна", 2017, roster.GenderFemale, 9.1, 3, "Б"},
	{"Дрозд", "Семен", "Сіргійович", 2010, roster.GenderMale, 10.1, 10, "А"},
	{"Жек", "Франко", "Артемович", 2010, roster.GenderMale, 5.1, 9, "Б"},
	{"Курлик", "Посейдоон", "Файлович", 2011, roster.GenderMale, 9.9, 8, "А"},
	{"Кірічок", "Софія", "Вайлентівна", 2017, roster.GenderFemale, 8.2, 3, "Б"},
	{"Хрищук", "Аміна", "Олегівна", 2018, roster.GenderFemale, 9.1, 2, "Б"},
	{"Фастун", "Дмитро", "Дмитрович", 2018, roster.GenderMale, 9.3, 2, "Б"},
	{"Заєць", "Максим", "Денисович", 2017, roster.GenderMale, 7.4, 3, "А"},
	{"Друг", "Федір", "Арсенович", 2017, roster.GenderMale, 7.6, 3, "А"},
	{"Рипун", "Поліна", "Олексіївна", 2017, roster.GenderFemale, 8.1, 3, "А"},
	{"Шуруп", "Остап", "Миколайович", 2017, roster.GenderMale, 9.7, 3, "А"},
	{"Козаченко", "Яся", "Степанівна", 2016, roster.GenderFemale, 11.7, 4, "А"},
	{"Рибак", "Денис", "Петрович", 2016, roster.GenderMale, 4.4, 4, "А"},
	{"Розумака", "Леся", "Богданівна", 2016, roster.GenderFemale, 5.7, 4, "А"},
	{"Задира", "Микита", "Глебович", 2016, roster.GenderMale, 11.1, 4, "А"},
	{"Дрозд", "Петро", "Матвійович", 2016, roster.GenderMale, 9.9, 4, "Б"},
	{"Кучер", "Марина", "Русланівна", 2016, roster.GenderFemale, 7.4, 6, "Б"},
	{"Кучер", "Маргарита", "Олександрівна", 2016, roster.GenderFemale, 7.2, 6, "Б"},
	{"Коцюбайло", "Дмитро", "Арсенович", 2012, roster.GenderMale, 8.9, 7, "А"},
	{"Хмельницький", "Богдан", "Петрович", 2012, roster.GenderMale, 8.9, 7, "А"},
	{"Фуцький", "Тарас", "Макарович", 2013, roster.GenderMale, 6.1, 7, "Б"},
	{"Молодецький", "Ярослав", "Євгенійович", 2013, roster.GenderMale, 5.5, 7, "Б"},
	{"Цись", "Юлія", "Іванівна", 2013, roster.GenderFemale, 5.3, 7, "Б"},
	{"Малюк", "Олександра", "Микитівна", 2011, roster.GenderFemale, 11.2, 8, "А"},
	{"Шевченко", "Дарина", "Назарівна", 2011, roster.GenderFemale, 2.2, 8, "А"},
	{"Ашуркіна", "Марія", "Захарова", 2011, roster.GenderFemale, 5.2, 8, "Б"},
	{"Курилко", "Роман", "Володимирович", 2011, roster.GenderMale, 4.9, 8, "Б"},
	{"Водолаз", "Мартин", "Антонович", 2011, roster.GenderMale, 9.0, 8, "Б"},
	{"Цюпа", "Олександра", "Рустемівна", 2011, roster.GenderFemale, 12.0, 8, "Б"},
	{"Єфіменко", "Світлана", "Володимирівна", 2010, roster.GenderFemale, 4.8, 9, "А"},
	{"Кабан", "Ростислав", "Захарович", 2010, roster.GenderMale, 8.8, 9, "А"},
	{"Антонов", "Антон", "Александрович", 2010, roster.GenderMale, 7.7, 9, "А"},
	{"Гудзь", "Вікторія", "Олексіївна", 2010, roster.GenderFemale, 10.1, 10, "А"},
	{"Усик", "Алла", "Максимівна", 2010, roster.GenderFemale, 11.4, 10, "А"},
	{"Яковенко", "Віола", "Федірівна", 2010, roster.GenderFemale, 10.5, 10, "А"},
	{"Коваль", "Ян", "Михайлович", 2010, roster.GenderMale, 10.4, 10, "Б"},
	{"Щедра", "Анна", "Василівна", 2010, roster.GenderFemale, 7.7, 10, "А"},
	{"Гуцуляк", "Віта", "Сіргіївна", 2010, roster.GenderFemale, 7.2, 10, "Б"},
	{"Чеснакова", "Леся", "Андріївна", 2010, roster.GenderFemale, 6.1, 10, "Б"},
	{"Стефанчук", "Володимир", "Олександрович", 2010, roster.GenderMale, 11.2, 10, "Б"},
}
